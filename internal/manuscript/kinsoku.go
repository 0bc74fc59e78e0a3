package manuscript

// lineStartForbidden holds closing punctuation that may never begin a line
// (gyōtō kinsoku).
var lineStartForbidden = map[rune]struct{}{
	'、': {},
	'。': {},
	'）': {},
	'」': {},
	'』': {},
	'】': {},
}

// lineEndForbidden holds opening brackets that may never end a line
// (gyōmatsu kinsoku).
var lineEndForbidden = map[rune]struct{}{
	'（': {},
	'「': {},
	'『': {},
	'【': {},
}

// IsLineStartForbidden reports whether r must not start a line.
func IsLineStartForbidden(r rune) bool {
	_, ok := lineStartForbidden[r]
	return ok
}

// IsLineEndForbidden reports whether r must not end a line.
func IsLineEndForbidden(r rune) bool {
	_, ok := lineEndForbidden[r]
	return ok
}
