package board

// Cell alphabets per size:
//   6x6, 9x9:   '1'..'6' / '1'..'9'
//   12x12:      '0'..'9' then 'a'..'b'
//   16x16:      '0'..'9' then 'a'..'f'
//   25x25:      'a'..'y'

// valueOf decodes one puzzle character to a value in [1,size].
func valueOf(size int, ch byte) (uint8, bool) {
	switch size {
	case 6, 9:
		if ch >= '1' && ch <= byte('0'+size) {
			return ch - '0', true
		}
	case 12, 16:
		if ch >= '0' && ch <= '9' {
			return ch - '0' + 1, true
		}
		max := byte('a' + size - 11)
		if ch >= 'a' && ch <= max {
			return ch - 'a' + 11, true
		}
	case 25:
		if ch >= 'a' && ch <= 'y' {
			return ch - 'a' + 1, true
		}
	}
	return 0, false
}

// charOf encodes a value in [1,size] to its puzzle character.
func charOf(size int, v uint8) byte {
	switch size {
	case 6, 9:
		return '0' + v
	case 12, 16:
		if v <= 10 {
			return '0' + v - 1
		}
		return 'a' + v - 11
	default: // 25
		return 'a' + v - 1
	}
}
