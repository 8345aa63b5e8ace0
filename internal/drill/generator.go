package drill

import (
	"crypto/rand"
	"math/big"

	"github.com/okian/swish/internal/domain/model"
)

// Canned observation fragments, roughly what dictated notes look like.
var observationPool = []string{
	"",
	"buen ritmo hoy",
	"brisa cruzada en la segunda mitad",
	"cansancio al final de la serie",
	"mejor arco en los últimos diez tiros",
	"calentamiento corto",
}

// randomInt returns a uniform random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// randomSeries produces one submission with a made-shot count inside the
// accepted range and an occasional observation.
func randomSeries() seriesRequest {
	span := model.MaxMadeShots - model.MinMadeShots + 1
	return seriesRequest{
		MadeShots:    model.MinMadeShots + randomInt(span),
		Observations: observationPool[randomInt(len(observationPool))],
	}
}
