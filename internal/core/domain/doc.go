// Package domain holds the types shared by the binding registry, the storage
// gateways, the indexing services and the bot: storage targets, user bindings,
// video records and progress events.
package domain
