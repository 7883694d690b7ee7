package pricing

import (
	"fmt"
	"math"

	"priceWise/domain"
)

// ElasticityModel holds the fitted ridge coefficients and everything Predict
// needs. Immutable after Fit; safe to share across concurrent scoring calls.
type ElasticityModel struct {
	ItemID       string      `json:"item_id"`
	Encoder      Encoder     `json:"encoder"`
	Theta        []float64   `json:"theta"`
	AInv         [][]float64 `json:"a_inv"`
	Sigma        float64     `json:"sigma"`
	Lambda       float64     `json:"lambda"`
	Observations int         `json:"observations"`
}

// Fit performs ridge regression of log(1+quantity) on
// [bias, log_price, weekday dummies, month dummies, event flag].
// An empty itemID fits the pooled model over all items.
func Fit(itemID string, history []domain.SalesObservation, cfg Config) (*ElasticityModel, error) {
	rows := make([]domain.SalesObservation, 0, len(history))
	for _, obs := range history {
		if obs.Price.IsPositive() && obs.Quantity >= 0 {
			rows = append(rows, obs)
		}
	}

	if len(rows) < cfg.MinObservations {
		return nil, &InsufficientDataError{
			ItemID:       itemID,
			Observations: len(rows),
			Required:     cfg.MinObservations,
		}
	}

	enc := buildEncoder(rows)
	dim := enc.Dim()

	// normal equations with ridge: theta = (X^T X + lambda I)^-1 X^T y
	A := identityScaled(dim, cfg.Lambda)
	b := make([]float64, dim)

	xs := make([][]float64, 0, len(rows))
	ys := make([]float64, 0, len(rows))

	for _, obs := range rows {
		x, _ := enc.Encode(observationContext(itemID, obs), obs.Price.InexactFloat64())
		y := math.Log1p(float64(obs.Quantity))
		addOuter(A, x)
		addScaled(b, x, y)
		xs = append(xs, x)
		ys = append(ys, y)
	}

	aInv, err := invertMatrix(A)
	if err != nil {
		return nil, fmt.Errorf("fit model for item %q: %w", itemID, err)
	}
	theta := matVecMul(aInv, b)

	rss := 0.0
	for i, x := range xs {
		resid := ys[i] - dot(theta, x)
		rss += resid * resid
	}
	dof := len(rows) - dim
	if dof < 1 {
		dof = 1
	}
	sigma := math.Sqrt(rss / float64(dof))

	return &ElasticityModel{
		ItemID:       itemID,
		Encoder:      enc,
		Theta:        theta,
		AInv:         aInv,
		Sigma:        sigma,
		Lambda:       cfg.Lambda,
		Observations: len(rows),
	}, nil
}

// Predict returns the mean log-demand for a feature vector together with a
// dispersion estimate. The dispersion is the residual std widened by ridge
// leverage, sigma * sqrt(1 + x^T (X^T X + lambda I)^-1 x), so contexts with
// little supporting data get a larger std.
func (m *ElasticityModel) Predict(x []float64) (float64, float64) {
	mean := dot(m.Theta, x)

	leverage := dot(x, matVecMul(m.AInv, x))
	if leverage < 0 {
		leverage = 0
	}
	std := m.Sigma * math.Sqrt(1.0+leverage)

	return mean, std
}

// PriceCoefficient is the fitted log-price coefficient. A healthy demand
// model has a negative one; the policy flags anything else in the record.
func (m *ElasticityModel) PriceCoefficient() float64 {
	return m.Theta[1]
}

func observationContext(itemID string, obs domain.SalesObservation) domain.Context {
	return domain.Context{
		ItemID:  itemID,
		Weekday: obs.Weekday,
		Month:   obs.Month,
		IsEvent: obs.IsEvent,
	}
}
