// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth checks the shared board credential and generates random IDs.

# Credentials

Every board mutation carries the configured password in its body:

	if err := auth.ValidateCredential(req.Credential, cfg.BoardPassword); err != nil {
		// 401
	}

Both sides are hashed with SHA-256 and compared with hmac.Equal, so the
check runs in constant time regardless of input length.

# ID Generation

Random hex IDs, used for request correlation in the access log:

	id, err := auth.GenerateID(8)  // 16 hex characters
*/
package auth
