package ports

import "github.com/aretw0/espalier/pkg/ui"

// Responder and Deferrer are declared next to the menus that drive them.
type (
	Responder = ui.Responder
	Deferrer  = ui.Deferrer
)
