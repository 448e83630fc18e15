//go:build race

package auth

import "golang.org/x/crypto/bcrypt"

func passwordHashCost() int {
	// Race builds pay enough instrumentation overhead already; drop back to
	// the default cost so hashing-heavy tests stay inside their deadlines.
	return bcrypt.DefaultCost
}
