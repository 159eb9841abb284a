// internal/catalog/predicate.go
package catalog

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Expr is a node of the predicate expression tree. Nodes render themselves
// into a SQL fragment plus positional arguments; the tree stays independent
// of the persistence layer so it can be built and inspected without a
// database handle.
type Expr interface {
	appendSQL(sb *strings.Builder, args *[]interface{})
}

// Cond is a single column comparison.
type Cond struct {
	Column string
	Op     Op
	Value  interface{}
}

type Op string

const (
	OpEq          Op = "="
	OpGte         Op = ">="
	OpLte         Op = "<="
	OpIn          Op = "IN"
	OpILike       Op = "ILIKE"
	OpContainsAll Op = "@>" // postgres array containment: every element must match
	OpIsNull      Op = "IS NULL"
	OpIsNotNull   Op = "IS NOT NULL"
)

func (c Cond) appendSQL(sb *strings.Builder, args *[]interface{}) {
	switch c.Op {
	case OpIsNull, OpIsNotNull:
		fmt.Fprintf(sb, "%s %s", c.Column, c.Op)
	case OpIn:
		fmt.Fprintf(sb, "%s IN ?", c.Column)
		*args = append(*args, c.Value)
	default:
		fmt.Fprintf(sb, "%s %s ?", c.Column, c.Op)
		*args = append(*args, c.Value)
	}
}

// Raw is an opaque SQL fragment with its own placeholders, for the few
// clauses (EXISTS subqueries) the comparison nodes cannot express.
type Raw struct {
	SQL  string
	Args []interface{}
}

func (r Raw) appendSQL(sb *strings.Builder, args *[]interface{}) {
	sb.WriteString(r.SQL)
	*args = append(*args, r.Args...)
}

// And renders its children joined by AND, parenthesized.
type And []Expr

func (a And) appendSQL(sb *strings.Builder, args *[]interface{}) {
	appendGroup(sb, args, []Expr(a), " AND ")
}

// Or renders its children joined by OR, parenthesized. Used for the
// search-term group that is itself AND-ed into the outer conjunction.
type Or []Expr

func (o Or) appendSQL(sb *strings.Builder, args *[]interface{}) {
	appendGroup(sb, args, []Expr(o), " OR ")
}

func appendGroup(sb *strings.Builder, args *[]interface{}, exprs []Expr, sep string) {
	if len(exprs) == 1 {
		exprs[0].appendSQL(sb, args)
		return
	}
	sb.WriteString("(")
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(sep)
		}
		e.appendSQL(sb, args)
	}
	sb.WriteString(")")
}

// Predicate is a conjunction of clauses plus the joins those clauses need.
// Absent facets contribute no clause at all, so an empty predicate compiles
// to no WHERE text. Joins are recorded by name and de-duplicated, which lets
// independent facets require the same relation without conflict.
type Predicate struct {
	conjuncts []Expr
	joins     map[string]string
	joinOrder []string
}

func NewPredicate() *Predicate {
	return &Predicate{joins: make(map[string]string)}
}

// Where AND-s another clause into the conjunction.
func (p *Predicate) Where(e Expr) *Predicate {
	p.conjuncts = append(p.conjuncts, e)
	return p
}

// Join registers a named join clause. Registering the same name twice is a
// no-op, so facet builders can declare their needs independently.
func (p *Predicate) Join(name, clause string) *Predicate {
	if _, ok := p.joins[name]; !ok {
		p.joins[name] = clause
		p.joinOrder = append(p.joinOrder, name)
	}
	return p
}

// Clauses reports how many clauses the conjunction holds.
func (p *Predicate) Clauses() int { return len(p.conjuncts) }

// Compile renders the conjunction as a SQL fragment with positional args.
// An empty predicate compiles to the empty string.
func (p *Predicate) Compile() (string, []interface{}) {
	if len(p.conjuncts) == 0 {
		return "", nil
	}
	var sb strings.Builder
	var args []interface{}
	for i, e := range p.conjuncts {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		e.appendSQL(&sb, &args)
	}
	return sb.String(), args
}

// JoinClauses returns the registered joins in registration order.
func (p *Predicate) JoinClauses() []string {
	out := make([]string, 0, len(p.joinOrder))
	for _, name := range p.joinOrder {
		out = append(out, p.joins[name])
	}
	return out
}

// Apply attaches the joins and the compiled conjunction to a gorm query.
func (p *Predicate) Apply(db *gorm.DB) *gorm.DB {
	for _, clause := range p.JoinClauses() {
		db = db.Joins(clause)
	}
	if sql, args := p.Compile(); sql != "" {
		db = db.Where(sql, args...)
	}
	return db
}
