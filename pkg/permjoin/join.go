package permjoin

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/arcator/cmdperms/cpapi"
	"github.com/arcator/cmdperms/pkg/logging"
	"github.com/arcator/cmdperms/pkg/tracing"
)

const logTag = "join"

// Join builds both indexes in one call and logs what was dropped along the way.
func Join(ctx context.Context, commands []cpapi.CommandRecord, permissions []cpapi.PermissionRecord) (NodeMap, AliasIndex) {
	ctx, span := tracing.StartFn(ctx, "Join")
	defer span.End()
	logger := logging.Ctx(ctx)

	aliases := BuildAliasIndex(commands)
	logger.Debug(logTag, "%d of %d commands declare aliases", len(aliases), len(commands))

	nodes := BuildNodeMap(permissions, aliases)
	logger.Debug(logTag, "%d aliased commands have a permission node", len(nodes))
	if logger.Verbose() {
		for _, cmd := range sortedKeys(aliases) {
			if _, ok := nodes[cmd]; !ok {
				logger.Debug(logTag, "no permission node for aliased command %q", cmd)
			}
		}
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrKeyCmdpermsRecordCount, len(commands)+len(permissions)),
	)
	return nodes, aliases
}

func sortedKeys(idx AliasIndex) []string {
	m := make(NodeMap, len(idx))
	for k := range idx {
		m[k] = ""
	}
	return m.Commands()
}
