package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/eveisesi/redisish"
)

func BuildSQLFilters(s sq.SelectBuilder, operators ...*redisish.Operator) sq.SelectBuilder {
	for _, a := range operators {
		if !a.Operation.IsValid() {
			continue
		}

		switch a.Operation {
		case redisish.OrderOp:
			s = s.OrderBy(fmt.Sprintf("%s %s", a.Column, sortValue(a.Value)))
		case redisish.LimitOp:
			s = s.Limit(uint64(a.Value.(int64)))
		case redisish.SkipOp:
			s = s.Offset(uint64(a.Value.(int64)))
		default:
			if pred := sqlPredicate(a); pred != nil {
				s = s.Where(pred)
			}
		}
	}

	return s

}

// BuildSQLDeleteFilters applies the predicate operators to a delete. Paging
// and ordering operators are ignored.
func BuildSQLDeleteFilters(d sq.DeleteBuilder, operators ...*redisish.Operator) sq.DeleteBuilder {
	for _, a := range operators {
		if !a.Operation.IsValid() {
			continue
		}

		if pred := sqlPredicate(a); pred != nil {
			d = d.Where(pred)
		}
	}

	return d
}

func sqlPredicate(a *redisish.Operator) sq.Sqlizer {
	switch a.Operation {
	case redisish.EqualOp, redisish.InOp:
		return sq.Eq{a.Column: a.Value}
	case redisish.NotEqualOp, redisish.NotInOp:
		return sq.NotEq{a.Column: a.Value}
	case redisish.GreaterThanEqualToOp:
		return sq.GtOrEq{a.Column: a.Value}
	case redisish.GreaterThanOp:
		return sq.Gt{a.Column: a.Value}
	case redisish.LessThanEqualToOp:
		return sq.LtOrEq{a.Column: a.Value}
	case redisish.LessThanOp:
		return sq.Lt{a.Column: a.Value}
	case redisish.LikeOp:
		return sq.Like{a.Column: fmt.Sprintf("%%%v%%", a.Value)}
	case redisish.ExistsOp:
		if exists, _ := a.Value.(bool); exists {
			return sq.NotEq{a.Column: nil}
		}
		return sq.Eq{a.Column: nil}
	case redisish.OrOp, redisish.AndOp:
		nested, ok := a.Value.([]*redisish.Operator)
		if !ok {
			return nil
		}

		preds := make([]sq.Sqlizer, 0, len(nested))
		for _, op := range nested {
			if pred := sqlPredicate(op); pred != nil {
				preds = append(preds, pred)
			}
		}

		if a.Operation == redisish.OrOp {
			return sq.Or(preds)
		}
		return sq.And(preds)
	}

	return nil
}
