// Package driven defines the outbound ports of the capture engine: the
// interfaces its services require from storage, configuration, the
// connectivity monitor and the remote household API. Adapters implement
// these; services depend only on the interfaces, so tests substitute
// in-memory fakes.
package driven
