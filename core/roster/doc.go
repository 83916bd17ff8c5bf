// Package roster reads the desired account list from a CSV export.
//
// Each data row becomes one Record: the target state for one account.
// Normalization transliterates umlauts and accents out of usernames, falls
// back to the username when the display name is empty, and cleans group
// lists. Records without a username stay in the slice (every input row must
// produce an outcome) but report Valid() == false and are never sent to the
// directory.
package roster
