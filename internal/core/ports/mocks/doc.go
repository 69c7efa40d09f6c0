// Package mocks provides test doubles for ports interfaces.
//
// These mocks are designed to be simple, thread-safe, in-memory implementations
// suitable for unit testing. Each mock provides:
//
//   - Default behavior backed by an in-memory store
//   - Callback functions (xxxFn) for customizing behavior per test
//   - Counters for asserting resource release
//
// # Usage Example
//
//	func TestIngest(t *testing.T) {
//		opener := mocks.NewGatewayOpener()
//		opener.InsertFn = func(context.Context, domain.VideoRecord) error {
//			return errors.New("boom")
//		}
//
//		svc := indexing.NewService(registry, opener, cfg, &logger)
//		// ... test service behavior
//	}
//
// # Available Mocks
//
//   - GatewayOpener: implements ports.GatewayOpener, gateways implement ports.StorageGateway
package mocks
