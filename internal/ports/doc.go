// Package ports defines the interfaces between the list-state services and
// their adapters. Client ports are implemented by the REST anti-corruption
// layer; store ports by persistence adapters.
package ports
