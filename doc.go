// Package auth provides password login and JWT access token primitives:
// bcrypt credential verification, token issuance and validation, stateful
// user repositories, and HTTP helpers for mounting the login and profile
// endpoints.
//
// Login flow:
//   - UserProvider resolves an identity from the users repository and checks
//     the submitted password against the stored bcrypt hash. Unknown accounts
//     and wrong passwords are indistinguishable to callers.
//   - Auther exchanges verified credentials for a signed access token whose
//     subject claim marks it as an access token.
//
// Session flow:
//   - The guardware middleware extracts and validates bearer tokens, stashing
//     the typed claims in the router locals and the request context.
//   - Guard resolves validated claims back to the user record and enforces
//     the active account check before protected handlers run.
package auth
