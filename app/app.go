package cpapp

import (
	appbase "github.com/arcator/cmdperms/app/base"
	_ "github.com/arcator/cmdperms/app/check"
	_ "github.com/arcator/cmdperms/app/generate"
	_ "github.com/arcator/cmdperms/app/lookup"
)

var App = appbase.App
