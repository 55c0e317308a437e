package server

import (
	"net/http"

	"github.com/mateconpizza/neo/internal/scheme"
)

// Linker links internal pages to the HTTP routes of this server.
type Linker struct{}

// Action returns /action/{name}. Parameters travel in the form body.
func (Linker) Action(a scheme.Action) string {
	return "/action/" + string(a.Name)
}

// Method is post; actions change state.
func (Linker) Method() string {
	return http.MethodPost
}

// Page returns /{name}.
func (Linker) Page(name string) string {
	return "/" + name
}
