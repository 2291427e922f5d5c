package domain

const (
	ReasonNotRecognized = "QR code not recognized in system"
	ReasonNoBottle      = "no matching bottle found for this QR code"
)

// Verification is the outcome for one scanned payload. Bottle is set only when Verified.
type Verification struct {
	QRURL    string
	Verified bool
	Bottle   *BottleSnapshot
	Reason   string
}

type BatchSummary struct {
	Total       int
	Verified    int
	NotVerified int
}

type BatchVerification struct {
	Results []Verification
	Summary BatchSummary
}

func Summarize(results []Verification) BatchSummary {
	s := BatchSummary{Total: len(results)}
	for _, r := range results {
		if r.Verified {
			s.Verified++
		} else {
			s.NotVerified++
		}
	}
	return s
}
