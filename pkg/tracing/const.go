package tracing

// Span attribute keys used by cmdperms
const (
	AttrKeyCmdpermsErrorCode   = "cmdperms.error.code"
	AttrKeyCmdpermsInputPath   = "cmdperms.input.path"
	AttrKeyCmdpermsRecordCount = "cmdperms.record.count"
	AttrKeyCmdpermsEntryCount  = "cmdperms.entry.count"
	AttrKeyCmdpermsCommand     = "cmdperms.command"
)
