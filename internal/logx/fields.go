package logx

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func Any(key string, value any) Field { return Field{Key: key, Value: value} }

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Time(key string, value time.Time) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err is the conventional "err" field.
func Err(err error) Field { return Field{Key: "err", Value: err} }

// Event names the workflow outcome an entry reports, e.g. payment_confirmed.
func Event(name string) Field { return Field{Key: "event", Value: name} }

// Decimal renders money as its exact string form.
func Decimal(key string, value decimal.Decimal) Field { return Field{Key: key, Value: value.String()} }
