package api

// PrimeList is the body of GET /v1/primes.
type PrimeList struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	Max       int    `json:"max"`
	Count     int    `json:"count"`
	Primes    []int  `json:"primes"`
}

// PrimeCount is the body of GET /v1/primes/count and one entry of a
// CountBatchResponse.
type PrimeCount struct {
	ID        string `json:"id,omitempty"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at,omitempty"`
	Max       int    `json:"max"`
	Count     int    `json:"count"`
}

// CountBatchRequest is the body of POST /v1/primes/count.
type CountBatchRequest struct {
	Max []int `json:"max"`
}

type CountBatchResponse struct {
	ID     string       `json:"id"`
	Object string       `json:"object"`
	Data   []PrimeCount `json:"data"`
}

// streamEvent is one server-sent event of GET /v1/primes/stream.
type streamEvent struct {
	Type  string `json:"type"`
	Index *int   `json:"index,omitempty"`
	Prime int    `json:"prime,omitempty"`
	Count *int   `json:"count,omitempty"`
	Max   *int   `json:"max,omitempty"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
