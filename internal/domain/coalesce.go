package domain

// Float64OrZero returns *p, or 0 when p is nil.
func Float64OrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
