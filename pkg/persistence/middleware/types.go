package middleware

import "github.com/aretw0/espalier/pkg/ports"

// Middleware allows wrapping an EntryStore to add behavior.
type Middleware func(ports.EntryStore) ports.EntryStore
