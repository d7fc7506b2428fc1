package world

// Reason is the closed failure taxonomy of the demolition and debris
// paths. Nothing on this surface panics or returns wrapped errors; every
// fallible operation reports one of these.
type Reason uint8

const (
	ReasonOK Reason = iota
	ReasonNotFound
	ReasonNotOwned
	ReasonAlreadyDeconstructed
	ReasonInsufficientCredits
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "OK"
	case ReasonNotFound:
		return "NotFound"
	case ReasonNotOwned:
		return "NotOwned"
	case ReasonAlreadyDeconstructed:
		return "AlreadyDeconstructed"
	case ReasonInsufficientCredits:
		return "InsufficientCredits"
	default:
		return "Unknown"
	}
}

// Result carries the success flag, the reason on failure, and the credits
// charged on success.
type Result struct {
	OK     bool
	Reason Reason
	Cost   int64
}

func Ok(cost int64) Result { return Result{OK: true, Reason: ReasonOK, Cost: cost} }
func Fail(r Reason) Result { return Result{Reason: r} }
