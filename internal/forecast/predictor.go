package forecast

import "fmt"

// Model is a fitted regressor bound to the window width it was trained on.
type Model struct {
	lookBack int
	reg      Regressor
}

// LookBack returns the input width the model expects.
func (m *Model) LookBack() int {
	if m == nil {
		return 0
	}
	return m.lookBack
}

// Regressor returns the underlying fitted regressor.
func (m *Model) Regressor() Regressor {
	if m == nil {
		return nil
	}
	return m.reg
}

// Predict forecasts the step after latest. It returns false for a nil model or
// when len(latest) differs from the trained width; no partial prediction is made.
func (m *Model) Predict(latest []float64) (float64, bool) {
	if m == nil || m.reg == nil {
		return 0, false
	}
	if len(latest) != m.lookBack {
		return 0, false
	}
	return m.reg.Predict(latest), true
}

// Predictor fits next-step models over windowed price samples.
type Predictor struct {
	learner Learner
}

// NewPredictor wraps learner; a nil learner falls back to OLS.
func NewPredictor(learner Learner) *Predictor {
	if learner == nil {
		learner = NewOLS()
	}
	return &Predictor{learner: learner}
}

// Fit trains a model on prices using lookBack-wide windows. It returns a nil
// model and nil error when prices are too short to build any sample.
func (p *Predictor) Fit(prices []float64, lookBack int) (*Model, error) {
	samples, err := BuildSamples(prices, lookBack)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, nil
	}
	x, y := Matrix(samples)
	reg, err := p.learner.Fit(x, y)
	if err != nil {
		return nil, fmt.Errorf("fit %d samples: %w", len(samples), err)
	}
	if reg.NumFeatures() != lookBack {
		return nil, fmt.Errorf("fit: regressor expects %d features, want %d", reg.NumFeatures(), lookBack)
	}
	return &Model{lookBack: lookBack, reg: reg}, nil
}

// Forecast fits on prices and predicts the step after the last lookBack prices.
// ok is false when there is not enough data.
func (p *Predictor) Forecast(prices []float64, lookBack int) (value float64, ok bool, err error) {
	m, err := p.Fit(prices, lookBack)
	if err != nil || m == nil {
		return 0, false, err
	}
	value, ok = m.Predict(prices[len(prices)-lookBack:])
	return value, ok, nil
}
