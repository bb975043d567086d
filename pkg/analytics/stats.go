package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Descriptive summarizes one numeric sample.
type Descriptive struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Describe computes descriptive statistics for a sample. Standard
// deviation is the sample standard deviation (n-1).
func Describe(xs []float64) Descriptive {
	if len(xs) == 0 {
		return Descriptive{}
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	d := Descriptive{
		Count:  len(xs),
		Mean:   stat.Mean(xs, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(xs) > 1 {
		d.StdDev = stat.StdDev(xs, nil)
	}
	return d
}

// pearson computes Pearson's r with a two-tailed p-value from the t
// distribution on n-2 degrees of freedom. ok is false when the sample is
// too small or a column is constant, which makes r undefined.
func pearson(x, y []float64) (r, p float64, ok bool) {
	n := len(x)
	if n < 3 || len(y) != n {
		return 0, 0, false
	}

	r = stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, 0, false
	}
	if r >= 1 || r <= -1 {
		return r, 0, true
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.Survival(math.Abs(t))
	if p > 1 {
		p = 1
	}
	return r, p, true
}

// welchT runs the two-sample t-test without assuming equal variances,
// using the Welch-Satterthwaite degrees of freedom. Two-tailed.
func welchT(a, b []float64) (t, df, p float64, ok bool) {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return 0, 0, 0, false
	}

	m1, m2 := stat.Mean(a, nil), stat.Mean(b, nil)
	v1 := stat.Variance(a, nil) / n1
	v2 := stat.Variance(b, nil) / n2

	se := math.Sqrt(v1 + v2)
	if se == 0 {
		// Both samples constant: identical means are a perfect null,
		// different means a perfect separation.
		if m1 == m2 {
			return 0, n1 + n2 - 2, 1, true
		}
		return math.Inf(int(math.Copysign(1, m1-m2))), n1 + n2 - 2, 0, true
	}

	t = (m1 - m2) / se
	df = (v1 + v2) * (v1 + v2) / (v1*v1/(n1-1) + v2*v2/(n2-1))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.Survival(math.Abs(t))
	if p > 1 {
		p = 1
	}
	return t, df, p, true
}

// mannWhitney runs the two-sided Mann-Whitney U test with the normal
// approximation, midranks for ties, tie-corrected variance, and a
// continuity correction. The returned U is the first sample's statistic.
func mannWhitney(a, b []float64) (u, p float64, ok bool) {
	n1, n2 := len(a), len(b)
	if n1 == 0 || n2 == 0 {
		return 0, 0, false
	}

	type obs struct {
		v     float64
		first bool
	}
	pooled := make([]obs, 0, n1+n2)
	for _, v := range a {
		pooled = append(pooled, obs{v, true})
	}
	for _, v := range b {
		pooled = append(pooled, obs{v, false})
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i].v < pooled[j].v })

	// Assign midranks and accumulate the tie correction term.
	n := len(pooled)
	ranks := make([]float64, n)
	tieSum := 0.0
	for i := 0; i < n; {
		j := i
		for j < n && pooled[j].v == pooled[i].v {
			j++
		}
		mid := float64(i+j+1) / 2 // average of 1-based ranks i+1..j
		for k := i; k < j; k++ {
			ranks[k] = mid
		}
		t := float64(j - i)
		tieSum += t*t*t - t
		i = j
	}

	r1 := 0.0
	for i, o := range pooled {
		if o.first {
			r1 += ranks[i]
		}
	}
	u = r1 - float64(n1)*float64(n1+1)/2

	fn1, fn2, fn := float64(n1), float64(n2), float64(n)
	mu := fn1 * fn2 / 2
	variance := fn1 * fn2 / 12 * ((fn + 1) - tieSum/(fn*(fn-1)))
	if variance <= 0 {
		// Every observation tied: no evidence either way.
		return u, 1, true
	}

	z := u - mu
	switch {
	case z > 0:
		z -= 0.5
	case z < 0:
		z += 0.5
	}
	z /= math.Sqrt(variance)

	p = 2 * distuv.UnitNormal.Survival(math.Abs(z))
	if p > 1 {
		p = 1
	}
	return u, p, true
}

// oneWayANOVA computes the F statistic and p-value across k groups. ok is
// false when fewer than two groups exist or the within-group degrees of
// freedom vanish.
func oneWayANOVA(groups [][]float64) (f, p float64, ok bool) {
	k := len(groups)
	if k < 2 {
		return 0, 0, false
	}

	n := 0
	sum := 0.0
	for _, g := range groups {
		n += len(g)
		for _, v := range g {
			sum += v
		}
	}
	dfw := n - k
	if n == 0 || dfw <= 0 {
		return 0, 0, false
	}
	grand := sum / float64(n)

	ssb, ssw := 0.0, 0.0
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		m := stat.Mean(g, nil)
		d := m - grand
		ssb += float64(len(g)) * d * d
		for _, v := range g {
			ssw += (v - m) * (v - m)
		}
	}

	dfb := float64(k - 1)
	if ssw == 0 {
		if ssb == 0 {
			return 0, 1, true
		}
		return math.Inf(1), 0, true
	}

	f = (ssb / dfb) / (ssw / float64(dfw))
	dist := distuv.F{D1: dfb, D2: float64(dfw)}
	p = dist.Survival(f)
	if p > 1 {
		p = 1
	}
	return f, p, true
}

// bonferroni adjusts a single comparison's p-value for a family of m
// comparisons, capping at 1.
func bonferroni(p float64, m int) float64 {
	adj := p * float64(m)
	if adj > 1 {
		return 1
	}
	return adj
}

// cohenD is the standardized mean difference using the pooled standard
// deviation sqrt((var_a + var_b) / 2).
func cohenD(a, b []float64) float64 {
	sd := math.Sqrt((stat.Variance(a, nil) + stat.Variance(b, nil)) / 2)
	if sd == 0 {
		return 0
	}
	return (stat.Mean(a, nil) - stat.Mean(b, nil)) / sd
}

// EffectMagnitude classifies |d| on Cohen's ladder.
func EffectMagnitude(d float64) string {
	ad := math.Abs(d)
	switch {
	case ad < 0.2:
		return "negligible"
	case ad < 0.5:
		return "small"
	case ad < 0.8:
		return "medium"
	default:
		return "large"
	}
}
