// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"math/rand"
	"sync"
)

// fallbackResponses is the fixed apology set substituted for a genuine
// completion after a remote failure. The chat surface never shows a raw
// error in place of assistant content.
var fallbackResponses = []string{
	"I can help with your Allied Mathematics assignment. What specific topic are you studying?",
	"For your Machine Learning project, consider using scikit-learn or TensorFlow to implement your models.",
	"Cloud Computing assignments often require understanding of services like AWS, Azure, or Google Cloud. What platform are you working with?",
	"I'd be happy to help with your Web Development project. Are you working with React, Angular, or another framework?",
	"For Database Systems, make sure you understand normalization and proper query optimization.",
	"Software Engineering principles like SOLID can really improve your code architecture.",
}

var (
	fallbackMu  sync.Mutex
	fallbackRNG = rand.New(rand.NewSource(rand.Int63()))
)

// FallbackResponse returns one of the fixed apology strings, chosen
// pseudo-randomly.
func FallbackResponse() string {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	return fallbackResponses[fallbackRNG.Intn(len(fallbackResponses))]
}

// IsFallbackResponse reports whether text is one of the fixed apology
// strings. Used by tests and the stats footer.
func IsFallbackResponse(text string) bool {
	for _, r := range fallbackResponses {
		if r == text {
			return true
		}
	}
	return false
}

// SeedFallback reseeds the apology selector. Tests use this for
// deterministic picks.
func SeedFallback(seed int64) {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	fallbackRNG = rand.New(rand.NewSource(seed))
}
