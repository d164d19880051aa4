package app

import "errors"

// Ошибки шагов оркестрации. Каждый шаг заворачивает свою причину
// в соответствующий sentinel, чтобы границы могли различать шаги
// через errors.Is, не разбирая текст.
var (
	ErrAcquire          = errors.New("acquire photo failed")
	ErrStage            = errors.New("stage upload failed")
	ErrInference        = errors.New("inference failed")
	ErrInferenceTimeout = errors.New("inference timed out")
	ErrRetrieve         = errors.New("retrieve annotated image failed") // не фатальна
	ErrTransform        = errors.New("transform failed")
	ErrDelivery         = errors.New("reply delivery failed")
)
