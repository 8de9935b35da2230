package forecast

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Learner fits a regressor to a feature matrix and target vector.
type Learner interface {
	Fit(x [][]float64, y []float64) (Regressor, error)
}

// Regressor maps a fixed-width feature vector to a scalar.
type Regressor interface {
	Predict(x []float64) float64
	NumFeatures() int
}

// DefaultRCond is the relative singular-value cutoff used by OLS.
const DefaultRCond = 1e-10

// OLS is an ordinary least squares learner with an intercept term.
//
// X and y are centred, the weights are the minimum-norm least-squares solution
// of the centred system and the intercept restores the means. Collinear
// windows (a steady price ramp, a flat series) therefore still fit.
type OLS struct {
	RCond float64
}

// NewOLS returns an OLS learner with the default cutoff.
func NewOLS() *OLS {
	return &OLS{RCond: DefaultRCond}
}

func (o *OLS) Fit(x [][]float64, y []float64) (Regressor, error) {
	n := len(x)
	if n == 0 {
		return nil, errors.New("ols: no samples")
	}
	if len(y) != n {
		return nil, fmt.Errorf("ols: %d rows but %d targets", n, len(y))
	}
	p := len(x[0])
	if p == 0 {
		return nil, errors.New("ols: empty feature rows")
	}

	xMean := make([]float64, p)
	yMean := 0.0
	for i, row := range x {
		if len(row) != p {
			return nil, fmt.Errorf("ols: row %d has %d features, want %d", i, len(row), p)
		}
		for j, v := range row {
			xMean[j] += v
		}
		yMean += y[i]
	}
	for j := range xMean {
		xMean[j] /= float64(n)
	}
	yMean /= float64(n)

	a := mat.NewDense(n, p, nil)
	b := mat.NewVecDense(n, nil)
	for i, row := range x {
		for j, v := range row {
			a.Set(i, j, v-xMean[j])
		}
		b.SetVec(i, y[i]-yMean)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errors.New("ols: svd factorization failed")
	}
	rcond := o.RCond
	if rcond <= 0 {
		rcond = DefaultRCond
	}

	weights := make([]float64, p)
	if rank := svd.Rank(rcond); rank > 0 {
		w := mat.NewVecDense(p, nil)
		svd.SolveVecTo(w, b, rank)
		for j := range weights {
			weights[j] = w.AtVec(j)
		}
	}

	intercept := yMean
	for j, w := range weights {
		intercept -= w * xMean[j]
	}
	return &LinearModel{Weights: weights, Intercept: intercept}, nil
}

// LinearModel is a fitted linear combination of inputs plus bias.
type LinearModel struct {
	Weights   []float64
	Intercept float64
}

func (m *LinearModel) Predict(x []float64) float64 {
	out := m.Intercept
	for j, w := range m.Weights {
		out += w * x[j]
	}
	return out
}

func (m *LinearModel) NumFeatures() int { return len(m.Weights) }
