package test

import (
	"math/rand"
	"strings"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

var operators = []string{"+", "-", "*", "**", "/", "//", "%", ":=", "(", ")", "{", "}"}

// Each generator yields text that scans as exactly one token when it is
// surrounded by whitespace.
var generators = []func() string{
	randomIdentifier,
	randomInteger,
	randomFloat,
	randomOperator,
	func() string { return "return" },
}

// GetRandomTokens joins size random tokens with runs of spaces and tabs.
func GetRandomTokens(size int) string {
	var b strings.Builder
	for i := 0; i < size; i++ {
		if i > 0 {
			b.WriteString(randomBlank())
		}
		b.WriteString(RandomToken())
	}

	return b.String()
}

func GetRandomTokensWithSep(size int, sep string) string {
	toks := make([]string, size)
	for i := range toks {
		toks[i] = RandomToken()
	}

	return strings.Join(toks, sep)
}

func RandomToken() string {
	return generators[rand.Intn(len(generators))]()
}

func randomIdentifier() string {
	return randomFrom(letters, 1+rand.Intn(8))
}

func randomInteger() string {
	return randomFrom(digits, 1+rand.Intn(6))
}

// Floats may have an empty fractional part, as in "42."
func randomFloat() string {
	return randomInteger() + "." + randomFrom(digits, rand.Intn(4))
}

func randomOperator() string {
	return operators[rand.Intn(len(operators))]
}

func randomBlank() string {
	return randomFrom(" \t", 1+rand.Intn(3))
}

func randomFrom(set string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = set[rand.Intn(len(set))]
	}

	return string(b)
}
