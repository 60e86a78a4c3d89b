// Package pkgerror defines the structured Error returned by use cases.
//
// An Error carries a client-facing message, a Type and a Code; the router maps
// the Code to an HTTP status at the edge.
package pkgerror
