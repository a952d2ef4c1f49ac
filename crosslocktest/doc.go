/*
Package crosslocktest provides mocks and helpers shared by tests across
the repository: an Authenticator with fixed signers, a context based
Authenticator, a transaction wrapper around a bare message, and random
identity generators.
*/
package crosslocktest
