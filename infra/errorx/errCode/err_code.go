package errCode

type Code int

const (
	EMPTY_VALUE Code = iota + 1
	INVALID_VALUE
	LOGIC_ERROR
	SHAPE_MISMATCH
)

func (c Code) String() string {
	switch c {
	case EMPTY_VALUE:
		return "EMPTY_VALUE"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case LOGIC_ERROR:
		return "LOGIC_ERROR"
	case SHAPE_MISMATCH:
		return "SHAPE_MISMATCH"
	default:
		return "UNKNOWN"
	}
}
