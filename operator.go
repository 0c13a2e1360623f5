package redisish

type Operation string

const (
	EqualOp              Operation = "="
	NotEqualOp           Operation = "!="
	GreaterThanOp        Operation = ">"
	GreaterThanEqualToOp Operation = ">="
	LessThanOp           Operation = "<"
	LessThanEqualToOp    Operation = "<="
	InOp                 Operation = "in"
	NotInOp              Operation = "not in"
	LikeOp               Operation = "like"
	ExistsOp             Operation = "exists"
	OrOp                 Operation = "or"
	AndOp                Operation = "and"

	LimitOp Operation = "limit"
	SkipOp  Operation = "skip"
	OrderOp Operation = "order"
)

var AllOperations = []Operation{
	EqualOp, NotEqualOp, GreaterThanOp, GreaterThanEqualToOp, LessThanOp, LessThanEqualToOp,
	InOp, NotInOp, LikeOp, ExistsOp, OrOp, AndOp, LimitOp, SkipOp, OrderOp,
}

func (o Operation) IsValid() bool {
	for _, op := range AllOperations {
		if o == op {
			return true
		}
	}

	return false
}

type Sort string

const (
	SortAsc  Sort = "ASC"
	SortDesc Sort = "DESC"
)

// Mongo returns the sort direction understood by mongo's $sort.
func (s Sort) Mongo() int {
	if s == SortDesc {
		return -1
	}
	return 1
}

type OpValue interface{}

// Operator describes a single filter, ordering or paging instruction. The
// store packages translate operators into mongo filters or SQL clauses.
type Operator struct {
	Column    string
	Operation Operation
	Value     OpValue
}

func NewEqualOperator(column string, value OpValue) *Operator {
	return &Operator{Column: column, Operation: EqualOp, Value: value}
}

func NewNotEqualOperator(column string, value OpValue) *Operator {
	return &Operator{Column: column, Operation: NotEqualOp, Value: value}
}

func NewGreaterThanOperator(column string, value OpValue) *Operator {
	return &Operator{Column: column, Operation: GreaterThanOp, Value: value}
}

func NewGreaterThanEqualToOperator(column string, value OpValue) *Operator {
	return &Operator{Column: column, Operation: GreaterThanEqualToOp, Value: value}
}

func NewLessThanOperator(column string, value OpValue) *Operator {
	return &Operator{Column: column, Operation: LessThanOp, Value: value}
}

func NewLessThanEqualToOperator(column string, value OpValue) *Operator {
	return &Operator{Column: column, Operation: LessThanEqualToOp, Value: value}
}

func NewInOperator(column string, values ...OpValue) *Operator {
	return &Operator{Column: column, Operation: InOp, Value: values}
}

func NewNotInOperator(column string, values ...OpValue) *Operator {
	return &Operator{Column: column, Operation: NotInOp, Value: values}
}

func NewLikeOperator(column string, value string) *Operator {
	return &Operator{Column: column, Operation: LikeOp, Value: value}
}

func NewExistsOperator(column string, exists bool) *Operator {
	return &Operator{Column: column, Operation: ExistsOp, Value: exists}
}

func NewOrOperator(operators ...*Operator) *Operator {
	return &Operator{Operation: OrOp, Value: operators}
}

func NewAndOperator(operators ...*Operator) *Operator {
	return &Operator{Operation: AndOp, Value: operators}
}

func NewLimitOperator(limit int64) *Operator {
	return &Operator{Operation: LimitOp, Value: limit}
}

func NewSkipOperator(skip int64) *Operator {
	return &Operator{Operation: SkipOp, Value: skip}
}

func NewOrderOperator(column string, sort Sort) *Operator {
	return &Operator{Column: column, Operation: OrderOp, Value: sort}
}
