//go:build !race

package auth

func passwordHashCost() int {
	// Tuned so a single verification lands in the tens of milliseconds.
	return 14
}
