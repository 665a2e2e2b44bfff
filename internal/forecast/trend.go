package forecast

import "math"

const minGrowthRate = 1e-10

// placeChangepoints spreads up to MaxChangepoints potential changepoints evenly
// over the first ChangepointRange of the scaled time axis t.
func placeChangepoints(t []float64) []float64 {
	histSize := int(math.Floor(float64(len(t)) * ChangepointRange))
	n := min(MaxChangepoints, histSize-1)
	if n <= 0 {
		return nil
	}

	cps := make([]float64, 0, n)
	step := float64(histSize-1) / float64(n)
	for i := 1; i <= n; i++ {
		idx := int(math.Round(step * float64(i)))
		cp := t[idx]
		if len(cps) > 0 && cps[len(cps)-1] == cp {
			continue
		}
		cps = append(cps, cp)
	}
	return cps
}

// logisticGamma computes the offset adjustments that keep the piecewise
// logistic trend continuous at every changepoint.
func logisticGamma(k, m float64, delta, cps []float64) []float64 {
	gamma := make([]float64, len(cps))
	rate := k
	offset := m
	for i, cp := range cps {
		next := rate + delta[i]
		if math.Abs(next) < minGrowthRate {
			next = math.Copysign(minGrowthRate, next)
		}
		gamma[i] = (cp - offset) * (1 - rate/next)
		offset += gamma[i]
		rate = next
	}
	return gamma
}

// piecewiseLogistic evaluates the logistic trend with capacity c at every
// t, writing into out.
func piecewiseLogistic(t []float64, c, k, m float64, delta, cps []float64, out []float64) {
	gamma := logisticGamma(k, m, delta, cps)
	for i, ti := range t {
		rate, offset := k, m
		for j, cp := range cps {
			if ti < cp {
				break
			}
			rate += delta[j]
			offset += gamma[j]
		}
		out[i] = c / (1 + math.Exp(-rate*(ti-offset)))
	}
}

// logisticInit picks starting growth rate and offset so that the trend
// passes through the first and last observations.
func logisticInit(t, y []float64, c float64) (k, m float64) {
	t0, t1 := t[0], t[len(t)-1]
	span := t1 - t0

	l0 := math.Max(1e-4*c, math.Min(0.9999*c, y[0]))
	l1 := math.Max(1e-4*c, math.Min(0.9999*c, y[len(y)-1]))
	r0 := c / l0
	r1 := c / l1
	if math.Abs(r0-r1) <= 0.01 {
		r0 *= 1.05
	}

	lr0 := math.Log(r0 - 1)
	lr1 := math.Log(r1 - 1)
	m = lr0 * span / (lr0 - lr1)
	k = (lr0 - lr1) / span
	return k, m
}
