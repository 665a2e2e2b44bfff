package forecast

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Dan9191/spend-forecast/internal/models"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const (
	trendPriorScale = 5.0
	sigmaPriorScale = 0.5
	minSigma        = 1e-4
	maxIterations   = 1000
)

var errNonFinite = errors.New("non-finite parameters")

// SeasonalOptions configures a SeasonalModel. Zero fields take the package defaults.
type SeasonalOptions struct {
	GrowthCap             float64
	ChangepointPriorScale float64
	Period                float64
	FourierOrder          int
	Holidays              models.HolidayTable
}

// SeasonalModel is an additive model of a logistic trend bounded by a fixed
// capacity, a monthly Fourier seasonality and one zero-width regressor per
// holiday group. Parameters are the maximum a posteriori estimate under
// Laplace priors on trend changes and normal priors elsewhere.
type SeasonalModel struct {
	opts SeasonalOptions

	start        time.Time
	last         time.Time
	spanDays     float64
	yScale       float64
	changepoints []float64
	holidayNames []string
	holidayDays  map[string]map[time.Time]bool

	k, m   float64
	delta  []float64
	beta   []float64
	fitted bool
	report FitReport
}

// NewSeasonalModel returns an unfitted SeasonalModel
func NewSeasonalModel(opts SeasonalOptions) *SeasonalModel {
	if opts.GrowthCap <= 0 {
		opts.GrowthCap = DefaultGrowthCap
	}
	if opts.ChangepointPriorScale <= 0 {
		opts.ChangepointPriorScale = ChangepointPriorScale
	}
	if opts.Period <= 0 {
		opts.Period = MonthlyPeriod
	}
	if opts.FourierOrder <= 0 {
		opts.FourierOrder = MonthlyFourierOrder
	}
	return &SeasonalModel{opts: opts}
}

// GrowthCap returns the capacity ceiling in effect
func (s *SeasonalModel) GrowthCap() float64 {
	return s.opts.GrowthCap
}

// Report implements Reporter
func (s *SeasonalModel) Report() FitReport {
	return s.report
}

// objective holds the scaled training data for one fit
type objective struct {
	t        []float64
	y        []float64
	x        *mat.Dense
	capacity float64
	cps      []float64
	cpScale  float64
	priors   []float64
}

func (o *objective) split(p []float64) (k, m float64, delta, beta []float64, sigma float64) {
	nc := len(o.cps)
	nb := len(o.priors)
	return p[0], p[1], p[2 : 2+nc], p[2+nc : 2+nc+nb], minSigma + math.Exp(p[len(p)-1])
}

// negLogPosterior is minimized by the optimizer. The Laplace prior uses a
// smoothed absolute value so that finite differences stay well defined at zero.
func (o *objective) negLogPosterior(p []float64) float64 {
	k, m, delta, beta, sigma := o.split(p)

	yhat := make([]float64, len(o.y))
	piecewiseLogistic(o.t, o.capacity, k, m, delta, o.cps, yhat)
	if len(beta) > 0 {
		var seasonal mat.VecDense
		seasonal.MulVec(o.x, mat.NewVecDense(len(beta), beta))
		floats.Add(yhat, seasonal.RawVector().Data)
	}

	var sse float64
	for i, y := range o.y {
		r := y - yhat[i]
		sse += r * r
	}

	n := float64(len(o.y))
	nlp := n*math.Log(sigma) + sse/(2*sigma*sigma)
	nlp += (k*k + m*m) / (2 * trendPriorScale * trendPriorScale)
	for _, d := range delta {
		nlp += math.Sqrt(d*d+1e-12) / o.cpScale
	}
	for j, b := range beta {
		nlp += b * b / (2 * o.priors[j] * o.priors[j])
	}
	nlp += sigma * sigma / (2 * sigmaPriorScale * sigmaPriorScale)

	if math.IsNaN(nlp) {
		return math.Inf(1)
	}
	return nlp
}

// Fit estimates the model parameters from the full series. It runs once;
// there is no hold-out or cross-validation.
func (s *SeasonalModel) Fit(ctx context.Context, series models.DailySeries) error {
	if err := requireHistory(series); err != nil {
		return err
	}

	s.start = series.First()
	s.last = series.Last()
	s.spanDays = s.last.Sub(s.start).Hours() / 24

	totals := series.Totals()
	s.yScale = floats.Max(totals)
	if s.yScale == 0 {
		s.yScale = 1
	}

	obj := &objective{
		t:        make([]float64, len(series)),
		y:        make([]float64, len(series)),
		capacity: s.opts.GrowthCap / s.yScale,
		cpScale:  s.opts.ChangepointPriorScale,
	}
	dates := make([]time.Time, len(series))
	for i, p := range series {
		dates[i] = p.Date
		obj.t[i] = s.scaleTime(p.Date)
		obj.y[i] = p.Total / s.yScale
	}
	obj.cps = placeChangepoints(obj.t)
	s.changepoints = obj.cps

	s.indexHolidays(dates)
	obj.x, obj.priors = s.features(dates)

	k0, m0 := logisticInit(obj.t, obj.y, obj.capacity)
	x0 := make([]float64, 2+len(obj.cps)+len(obj.priors)+1)
	x0[0], x0[1] = k0, m0

	params, err := s.minimize(ctx, obj, x0)
	if err != nil {
		return err
	}

	k, m, delta, beta, _ := obj.split(params)
	s.k, s.m = k, m
	s.delta = append([]float64(nil), delta...)
	s.beta = append([]float64(nil), beta...)
	s.fitted = true
	return nil
}

// minimize runs L-BFGS and falls back to Nelder-Mead when L-BFGS yields
// nothing usable.
func (s *SeasonalModel) minimize(ctx context.Context, obj *objective, x0 []float64) ([]float64, error) {
	problem := optimize.Problem{
		Func: obj.negLogPosterior,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, obj.negLogPosterior, x, &fd.Settings{Formula: fd.Central})
		},
	}

	methods := []struct {
		name   string
		method optimize.Method
	}{
		{"lbfgs", &optimize.LBFGS{}},
		{"nelder-mead", &optimize.NelderMead{}},
	}

	start := obj.negLogPosterior(x0)
	var lastErr error
	for _, m := range methods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		settings := &optimize.Settings{
			MajorIterations: maxIterations,
			Converger: &optimize.FunctionConverge{
				Absolute:   1e-10,
				Relative:   1e-10,
				Iterations: 50,
			},
		}
		if deadline, ok := ctx.Deadline(); ok {
			settings.Runtime = time.Until(deadline)
		}

		result, err := optimize.Minimize(problem, x0, settings, m.method)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if result != nil && usable(result.X, result.F) && result.F <= start {
			s.report = FitReport{
				Method:     m.name,
				Status:     result.Status.String(),
				Iterations: result.Stats.MajorIterations,
				Objective:  result.F,
			}
			return result.X, nil
		}
		lastErr = err
		if lastErr == nil {
			lastErr = errNonFinite
		}
	}
	return nil, &ComputationError{Stage: "fit", Cause: lastErr}
}

// Predict projects horizon days past the last observed day. Values are
// clipped to [0, GrowthCap].
func (s *SeasonalModel) Predict(horizon int) ([]Prediction, error) {
	if !s.fitted {
		return nil, errNotFitted
	}

	dates := futureDates(s.last, horizon)
	t := make([]float64, horizon)
	for i, d := range dates {
		t[i] = s.scaleTime(d)
	}

	yhat := make([]float64, horizon)
	piecewiseLogistic(t, s.opts.GrowthCap/s.yScale, s.k, s.m, s.delta, s.changepoints, yhat)
	if len(s.beta) > 0 {
		x, _ := s.features(dates)
		var seasonal mat.VecDense
		seasonal.MulVec(x, mat.NewVecDense(len(s.beta), s.beta))
		floats.Add(yhat, seasonal.RawVector().Data)
	}

	out := make([]Prediction, horizon)
	for i, d := range dates {
		v := yhat[i] * s.yScale
		if math.IsNaN(v) {
			return nil, &ComputationError{Stage: "predict", Cause: errNonFinite}
		}
		out[i] = Prediction{Date: d, Value: clamp(v, 0, s.opts.GrowthCap)}
	}
	return out, nil
}

func (s *SeasonalModel) scaleTime(d time.Time) float64 {
	return d.Sub(s.start).Hours() / 24 / s.spanDays
}

// indexHolidays keeps the holiday groups that occur at least once in the
// history. Groups never observed have a zero MAP coefficient, so they are
// left out of the design matrix.
func (s *SeasonalModel) indexHolidays(history []time.Time) {
	inHistory := make(map[time.Time]bool, len(history))
	for _, d := range history {
		inHistory[d] = true
	}

	s.holidayDays = make(map[string]map[time.Time]bool)
	observed := make(map[string]bool)
	for _, h := range s.opts.Holidays {
		day := civilDate(h.Date)
		if s.holidayDays[h.Name] == nil {
			s.holidayDays[h.Name] = make(map[time.Time]bool)
		}
		s.holidayDays[h.Name][day] = true
		if inHistory[day] {
			observed[h.Name] = true
		}
	}

	s.holidayNames = s.holidayNames[:0]
	for _, name := range s.opts.Holidays.Names() {
		if observed[name] {
			s.holidayNames = append(s.holidayNames, name)
		}
	}
}

// features builds the regressor matrix: sin/cos pairs for each harmonic of
// the monthly period, then one indicator column per holiday group. It also
// returns the prior scale of every column.
func (s *SeasonalModel) features(dates []time.Time) (*mat.Dense, []float64) {
	order := s.opts.FourierOrder
	cols := 2*order + len(s.holidayNames)

	priors := make([]float64, cols)
	for j := range priors {
		if j < 2*order {
			priors[j] = SeasonalityPriorScale
		} else {
			priors[j] = HolidaysPriorScale
		}
	}

	x := mat.NewDense(len(dates), cols, nil)
	for i, d := range dates {
		// days since the Unix epoch keep the phase identical for history and future
		days := float64(d.Unix()) / 86400
		for h := 1; h <= order; h++ {
			angle := 2 * math.Pi * float64(h) * days / s.opts.Period
			x.Set(i, 2*(h-1), math.Sin(angle))
			x.Set(i, 2*(h-1)+1, math.Cos(angle))
		}
		for j, name := range s.holidayNames {
			if s.holidayDays[name][d] {
				x.Set(i, 2*order+j, 1)
			}
		}
	}
	return x, priors
}

func usable(x []float64, f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
