// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package alerts notifies about new submissions and suppresses duplicates.

# Events

Every alert is delivered as:

	{"type": "new_submission", "status": "registered"|"unknown", "memberId": 123, "submittedAt": "..."}

# Sinks

  - WebhookNotifier: HTTP POST, delivered on a background goroutine
  - MQTTNotifier: publish to a broker topic (QoS 1), also on a background goroutine
  - Multi: fan-out to several sinks

Notifiers never return errors. Failures are logged and do not affect the
request that triggered them.

# Ledger

Unknown member IDs are alerted once. The ledger records them and is saved
synchronously right after the alert is handed to the notifier. A failed save
is logged; the in-memory entry still suppresses repeats until restart.
*/
package alerts
