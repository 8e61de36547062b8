/*
Package event provides the pub/sub event system for the import-sorter backend.

Publishers emit sort lifecycle events and subscribers (the SSE feed, the CLI
progress printer, tests) react to them without direct dependencies. The
package is built on watermill's gochannel for infrastructure while keeping
direct-call dispatch so payloads stay typed.

Event categories:

Sort events:
  - sort.applied: a document's imports were sorted and committed
  - sort.error: a sort action failed at its trigger boundary

User-facing surface:
  - notice.posted: one-line message for the user
  - status.updated: progress indicator text or visibility changed

Configuration events:
  - config.warning: non-fatal resolution warning (missing custom file)
  - config.changed: the project configuration file changed on disk

Directory batch events:
  - batch.started, batch.file, batch.done, batch.error

Subscribe for a single type or for everything:

	unsub := event.Subscribe(event.BatchFile, func(e event.Event) { ... })
	defer unsub()

Progress-bearing events are published with PublishSync so counts arrive in
order; everything else may use the asynchronous Publish.
*/
package event
