package interp

import (
	"fmt"

	"github.com/dove-lang/dove/internal/ast"
	"github.com/dove-lang/dove/internal/lexer"
	"github.com/dove-lang/dove/internal/runtime"
)

func (i *Interpreter) visitExpr(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Variable:
		return i.lookupVariable(e.Name)

	case *ast.SelfExpr:
		return i.lookupVariable(e.Keyword)

	case *ast.SuperExpr:
		return i.visitSuperExpr(e)

	case *ast.Grouping:
		return i.evaluate(e.Expression)

	case *ast.Tuple:
		elements, err := i.evaluateList(e.Elements)
		if err != nil {
			return nil, err
		}
		return runtime.NewTuple(elements), nil

	case *ast.Array:
		elements, err := i.evaluateList(e.Elements)
		if err != nil {
			return nil, err
		}
		return runtime.NewArray(elements), nil

	case *ast.Dictionary:
		return i.visitDictionary(e)

	case *ast.Unary:
		return i.visitUnary(e)

	case *ast.Binary:
		left, err := i.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		return i.evalBinary(e.Operator, left, right)

	case *ast.Assign:
		return i.visitAssign(e)

	case *ast.Get:
		return i.visitGet(e)

	case *ast.Set:
		return i.visitSet(e)

	case *ast.IndexGet:
		return i.visitIndexGet(e)

	case *ast.IndexSet:
		return i.visitIndexSet(e)

	case *ast.Call:
		return i.visitCall(e)

	case *ast.Lambda:
		return runtime.NewFunction("", e.Params, e.Body, i.environment), nil

	case *ast.IfExpr:
		return i.visitIfExpr(e)

	default:
		return nil, errorInterrupt(runtimeErrorUnspecified(fmt.Sprintf("Unsupported expression type %T.", expr)))
	}
}

func (i *Interpreter) evaluateList(exprs []ast.Expr) ([]runtime.Value, error) {
	values := make([]runtime.Value, len(exprs))
	for idx, e := range exprs {
		v, err := i.evaluate(e)
		if err != nil {
			return nil, err
		}
		values[idx] = v
	}
	return values, nil
}

func (i *Interpreter) visitUnary(e *ast.Unary) (runtime.Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case lexer.BANG, lexer.NOT:
		return !runtime.IsTruthy(right), nil
	case lexer.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, errorInterrupt(runtimeErrorAtToken(e.Operator, fmt.Sprintf("Operand of '%s' must be a number.", e.Operator.Lexeme)))
		}
		return -n, nil
	default:
		return nil, errorInterrupt(runtimeErrorAtToken(e.Operator, fmt.Sprintf("Unsupported unary operator %s.", e.Operator.Lexeme)))
	}
}

func (i *Interpreter) visitDictionary(e *ast.Dictionary) (runtime.Value, error) {
	dict := runtime.NewDictionary()
	for _, entry := range e.Entries {
		key, err := i.evaluate(entry.Key)
		if err != nil {
			return nil, err
		}
		val, err := i.evaluate(entry.Value)
		if err != nil {
			return nil, err
		}
		dictKey, ok := runtime.DictKeyFromValue(key)
		if !ok {
			return nil, errorInterrupt(runtimeErrorUnspecified("Only String and Integer can be used as dictionary key."))
		}
		dict.Set(dictKey, val)
	}
	return dict, nil
}

// visitAssign applies `=`, `+=`, `-=`, `*=`, `/=` (and the `++`/`--` forms
// already lowered to `+=1`/`-=1` by the parser).
func (i *Interpreter) visitAssign(e *ast.Assign) (runtime.Value, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	result := value
	if e.Op != ast.AssignSet {
		current, err := i.lookupVariable(e.Name)
		if err != nil {
			return nil, err
		}
		op := syntheticOperator(e.Op, e.Name.Line)
		result, err = i.evalBinary(op, current, value)
		if err != nil {
			return nil, err
		}
	}

	if err := i.assignVariable(e.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

func syntheticOperator(op ast.AssignOp, line int) lexer.Token {
	switch op {
	case ast.AssignAdd:
		return lexer.Token{Type: lexer.PLUS, Lexeme: "+", Line: line}
	case ast.AssignSub:
		return lexer.Token{Type: lexer.MINUS, Lexeme: "-", Line: line}
	case ast.AssignMul:
		return lexer.Token{Type: lexer.STAR, Lexeme: "*", Line: line}
	default:
		return lexer.Token{Type: lexer.SLASH, Lexeme: "/", Line: line}
	}
}

func (i *Interpreter) visitGet(e *ast.Get) (runtime.Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	value, ok := i.getProperty(object, e.Name.Lexeme)
	if !ok {
		return nil, errorInterrupt(runtimeErrorAtToken(e.Name, fmt.Sprintf("Cannot get property '%s' of type '%s'.", e.Name.Lexeme, runtime.TypeName(object))))
	}
	return value, nil
}

func (i *Interpreter) visitSet(e *ast.Set) (runtime.Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if !i.setProperty(object, e.Name.Lexeme, value) {
		return nil, errorInterrupt(runtimeErrorAtToken(e.Name, fmt.Sprintf("Cannot set property '%s' of type '%s'.", e.Name.Lexeme, runtime.TypeName(object))))
	}
	return value, nil
}

func (i *Interpreter) visitIfExpr(e *ast.IfExpr) (runtime.Value, error) {
	cond, err := i.evaluate(e.Condition)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	if runtime.IsTruthy(cond) {
		stmts = e.Then.Statements
	} else {
		switch branch := e.Else.(type) {
		case *ast.Block:
			stmts = branch.Statements
		case *ast.IfExpr:
			return i.visitIfExpr(branch)
		default:
			stmts = nil
		}
	}

	env := runtime.NewEnvironment(i.environment)
	return i.executeImplicitReturn(stmts, env)
}

func (i *Interpreter) visitSuperExpr(e *ast.SuperExpr) (runtime.Value, error) {
	distance, ok := i.resolver.DepthFor(e.Keyword.Line, e.Keyword.Lexeme)
	if !ok {
		return nil, errorInterrupt(runtimeErrorAtToken(e.Keyword, fmt.Sprintf("Cannot resolve '%s' in the scope.", e.Keyword.Lexeme)))
	}

	superVal, ok := i.environment.GetAt(distance, e.Keyword.Lexeme)
	if !ok {
		return nil, errorInterrupt(runtimeErrorAtToken(e.Keyword, "Cannot find superclass."))
	}
	superclass, ok := superVal.(*runtime.Class)
	if !ok {
		return nil, errorInterrupt(runtimeErrorAtToken(e.Keyword, "Cannot find superclass."))
	}

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, errorInterrupt(runtimeErrorAtToken(e.Method, fmt.Sprintf("Cannot find method '%s' from class '%s'", e.Method.Lexeme, superclass.Name)))
	}

	selfVal, ok := i.environment.GetAt(distance-1, selfKeyword)
	if !ok {
		return nil, errorInterrupt(runtimeErrorAtLine(e.Keyword.Line, "Cannot find 'self' in the scope"))
	}
	instance, ok := selfVal.(*runtime.Instance)
	if !ok {
		return nil, errorInterrupt(runtimeErrorAtLine(e.Keyword.Line, "Cannot find 'self' in the scope"))
	}

	return method.Bind(instance), nil
}
