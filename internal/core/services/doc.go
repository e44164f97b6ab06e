// Package services implements the engine's use cases on top of the driven
// ports: draft capture, the save/push coordinator and session management.
// Services receive every dependency through their constructor so tests can
// substitute in-memory fakes.
package services
