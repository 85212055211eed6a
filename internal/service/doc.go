// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features.
//
// Each service focuses on one resource area: UserService owns registration,
// profile updates, and the cascading delete; PostService owns post CRUD and
// the owner existence check. Services receive their dependencies through
// constructor injection and apply transactional boundaries when an operation
// spans multiple stores.
//
// The service layer depends on domain entities and store interfaces, never
// on specific infrastructure implementations.
package service
