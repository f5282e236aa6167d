// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - IntegrationStore: OAuth token record persistence
//   - TokenCacheStore: Process-local access token cache
//   - TransactionStore: Confirmed transaction persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ConnectorFactory: Google clients (Gmail, Calendar, Sheets). Without it,
//     imports are unavailable but offline extraction still works.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
