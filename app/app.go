package app

import (
	"github.com/orgintake/intake/blob"
	"github.com/orgintake/intake/config"
	"github.com/orgintake/intake/form"
	"github.com/orgintake/intake/store"
)

// App bundles the injected capabilities the route handlers close over.
type App struct {
	Store    store.Store
	Files    blob.Store
	Sessions *form.Sessions
	config.Config
}
