// internal/cw/tree.go
// Package cw converts a keyed element stream back into text. It is a pure
// consumer of the keyer's observable output - an echo of what the operator
// keyed - and makes no keying decisions of its own.
package cw

// MorseTree is the binary tree for Morse code lookup.
// Left branch = dit, Right branch = dah.
// Index 0 is root (unused), 1 is after first element, etc.
// Tree structure: parent at i, left child at 2i, right child at 2i+1
var MorseTree = [64]rune{
	0,   // 0: root (unused)
	0,   // 1: start
	'E', // 2: .
	'T', // 3: -
	'I', // 4: ..
	'A', // 5: .-
	'N', // 6: -.
	'M', // 7: --
	'S', // 8: ...
	'U', // 9: ..-
	'R', // 10: .-.
	'W', // 11: .--
	'D', // 12: -..
	'K', // 13: -.-
	'G', // 14: --.
	'O', // 15: ---
	'H', // 16: ....
	'V', // 17: ...-
	'F', // 18: ..-.
	0,   // 19: ..--
	'L', // 20: .-..
	0,   // 21: .-.-
	'P', // 22: .--.
	'J', // 23: .---
	'B', // 24: -...
	'X', // 25: -..-
	'C', // 26: -.-.
	'Y', // 27: -.--
	'Z', // 28: --..
	'Q', // 29: --.-
	0,   // 30: ---.
	0,   // 31: ----
	'5', // 32: .....
	'4', // 33: ....-
	0,   // 34: ...-.
	'3', // 35: ...--
	0,   // 36: ..-..
	0,   // 37: ..-.-
	0,   // 38: ..--.
	'2', // 39: ..---
	0,   // 40: .-...
	0,   // 41: .-..-
	0,   // 42: .-.-.
	0,   // 43: .-.--
	0,   // 44: .--..
	0,   // 45: .--.-
	0,   // 46: .---.
	'1', // 47: .----
	'6', // 48: -....
	'=', // 49: -...-
	'/', // 50: -..-.
	0,   // 51: -..--
	0,   // 52: -.-..
	0,   // 53: -.-.-
	0,   // 54: -.--.
	0,   // 55: -.---
	'7', // 56: --...
	0,   // 57: --..-
	0,   // 58: --.-.
	0,   // 59: --.--
	'8', // 60: ---..
	0,   // 61: ---.-
	'9', // 62: ----.
	'0', // 63: -----
}
