package store

import (
	"fmt"
	"regexp"

	"github.com/eveisesi/redisish"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo Operators
const (
	equal            string = "$eq"
	greaterthan      string = "$gt"
	greaterthanequal string = "$gte"
	in               string = "$in"
	lessthan         string = "$lt"
	lessthanequal    string = "$lte"
	notequal         string = "$ne"
	notin            string = "$nin"
	and              string = "$and"
	or               string = "$or"
	exists           string = "$exists"
	regex            string = "$regex"
)

func BuildMongoFilters(operators ...*redisish.Operator) primitive.D {

	var ops = make(primitive.D, 0)
	for _, a := range operators {
		switch a.Operation {
		case redisish.EqualOp:
			ops = append(ops, primitive.E{Key: a.Column, Value: primitive.D{primitive.E{Key: equal, Value: a.Value}}})
		case redisish.NotEqualOp:
			ops = append(ops, primitive.E{Key: a.Column, Value: primitive.D{primitive.E{Key: notequal, Value: a.Value}}})
		case redisish.GreaterThanOp:
			ops = append(ops, primitive.E{Key: a.Column, Value: primitive.D{primitive.E{Key: greaterthan, Value: a.Value}}})
		case redisish.GreaterThanEqualToOp:
			ops = append(ops, primitive.E{Key: a.Column, Value: primitive.D{primitive.E{Key: greaterthanequal, Value: a.Value}}})
		case redisish.LessThanOp:
			ops = append(ops, primitive.E{Key: a.Column, Value: primitive.D{primitive.E{Key: lessthan, Value: a.Value}}})
		case redisish.LessThanEqualToOp:
			ops = append(ops, primitive.E{Key: a.Column, Value: primitive.D{primitive.E{Key: lessthanequal, Value: a.Value}}})
		case redisish.ExistsOp:
			ops = append(ops, primitive.E{Key: a.Column, Value: primitive.D{primitive.E{Key: exists, Value: a.Value.(bool)}}})
		case redisish.LikeOp:
			pattern := regexp.QuoteMeta(fmt.Sprintf("%v", a.Value))
			ops = append(ops, primitive.E{Key: a.Column, Value: primitive.D{primitive.E{Key: regex, Value: primitive.Regex{Pattern: pattern, Options: "i"}}}})
		case redisish.OrOp, redisish.AndOp:
			key := or
			if a.Operation == redisish.AndOp {
				key = and
			}

			switch o := a.Value.(type) {
			case []*redisish.Operator:
				arr := make(primitive.A, 0, len(o))
				for _, op := range o {
					arr = append(arr, BuildMongoFilters(op))
				}

				ops = append(ops, primitive.E{Key: key, Value: arr})
			}
		case redisish.InOp, redisish.NotInOp:
			key := in
			if a.Operation == redisish.NotInOp {
				key = notin
			}

			switch o := a.Value.(type) {
			case []redisish.OpValue:
				arr := make(primitive.A, 0, len(o))
				for _, value := range o {
					arr = append(arr, value)
				}

				ops = append(ops, primitive.E{Key: a.Column, Value: primitive.D{primitive.E{Key: key, Value: arr}}})
			default:
				panic(fmt.Sprintf("invalid type %T supplied, expected one of [[]redisish.OpValue]", o))
			}
		}
	}

	return ops

}

func BuildMongoFindOptions(ops ...*redisish.Operator) *options.FindOptions {
	var opts = options.Find()
	for _, a := range ops {
		switch a.Operation {
		case redisish.LimitOp:
			opts.SetLimit(a.Value.(int64))
		case redisish.SkipOp:
			opts.SetSkip(a.Value.(int64))
		case redisish.OrderOp:
			opts.SetSort(primitive.D{primitive.E{Key: a.Column, Value: sortValue(a.Value).Mongo()}})
		}
	}

	return opts
}

func sortValue(v redisish.OpValue) redisish.Sort {
	switch s := v.(type) {
	case redisish.Sort:
		return s
	case string:
		return redisish.Sort(s)
	}

	return redisish.SortAsc
}
