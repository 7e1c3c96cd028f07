package interp

import (
	"fmt"

	"github.com/dove-lang/dove/internal/ast"
	"github.com/dove-lang/dove/internal/runtime"
)

func (i *Interpreter) visitStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return i.executeBlock(s.Statements, runtime.NewEnvironment(i.environment))

	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		return i.visitPrintStmt(s)

	case *ast.VarStmt:
		return i.visitVarStmt(s)

	case *ast.FunctionStmt:
		fn := runtime.NewFunction(s.Name.Lexeme, s.Params, s.Body, i.environment)
		i.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ClassStmt:
		return i.visitClassStmt(s)

	case *ast.ReturnStmt:
		var value runtime.Value
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnInterrupt(value)

	case *ast.BreakStmt:
		return breakInterrupt()

	case *ast.ContinueStmt:
		return continueInterrupt()

	case *ast.WhileStmt:
		return i.visitWhileStmt(s)

	case *ast.ForStmt:
		return i.visitForStmt(s)

	default:
		return errorInterrupt(runtimeErrorUnspecified(fmt.Sprintf("Unsupported statement type %T.", stmt)))
	}
}

func (i *Interpreter) visitPrintStmt(s *ast.PrintStmt) error {
	if s.Expression == nil {
		i.output.Print("")
		return nil
	}
	value, err := i.evaluate(s.Expression)
	if err != nil {
		return err
	}
	i.output.Print(runtime.Stringify(value))
	return nil
}

func (i *Interpreter) visitVarStmt(s *ast.VarStmt) error {
	var value runtime.Value
	if s.Initializer != nil {
		v, err := i.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	i.environment.Define(s.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) visitClassStmt(s *ast.ClassStmt) error {
	var superclass *runtime.Class
	if s.Superclass != nil {
		superVal, err := i.lookupVariable(s.Superclass.Name)
		if err != nil {
			return err
		}
		sc, ok := superVal.(*runtime.Class)
		if !ok {
			return errorInterrupt(runtimeErrorAtToken(s.Superclass.Name, "Superclass must be a class."))
		}
		superclass = sc
	}

	// The class's own name is visible (bound to nil) inside its method
	// bodies before the class value itself exists, matching the resolver's
	// declare-then-define ordering; it is overwritten below once the class
	// descriptor is built.
	i.environment.Define(s.Name.Lexeme, nil)

	classEnv := i.environment
	if superclass != nil {
		classEnv = runtime.NewEnvironment(i.environment)
		classEnv.Define(superKeyword, superclass)
	}

	methods := make(map[string]*runtime.Function, len(s.Methods))
	for _, m := range s.Methods {
		fn := runtime.NewFunction(m.Name.Lexeme, m.Params, m.Body, classEnv)
		if m.Name.Lexeme == "init" {
			fn.IsInitializer = true
		}
		methods[m.Name.Lexeme] = fn
	}

	class := runtime.NewClass(s.Name.Lexeme, superclass, methods)
	i.environment.Define(s.Name.Lexeme, class)
	return nil
}

func (i *Interpreter) visitWhileStmt(s *ast.WhileStmt) error {
	for {
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if !runtime.IsTruthy(cond) {
			return nil
		}

		err = i.executeBlock(s.Body.Statements, runtime.NewEnvironment(i.environment))
		if err != nil {
			if isBreak(err) {
				return nil
			}
			if isContinue(err) {
				continue
			}
			return err
		}
	}
}

// visitForStmt iterates an Array or Tuple. Per spec.md §9 Open Question 5,
// iteration over an Array is index-based and re-reads the backing slice
// (and its length) on every step, so mutation of the array during the loop
// is observable rather than snapshotted.
func (i *Interpreter) visitForStmt(s *ast.ForStmt) error {
	iterable, err := i.evaluate(s.Iterable)
	if err != nil {
		return err
	}

	switch coll := iterable.(type) {
	case *runtime.Array:
		for idx := 0; idx < len(coll.Elements); idx++ {
			env := runtime.NewEnvironment(i.environment)
			env.Define(s.Name.Lexeme, coll.Elements[idx])
			if err := i.executeBlock(s.Body.Statements, env); err != nil {
				if isBreak(err) {
					return nil
				}
				if isContinue(err) {
					continue
				}
				return err
			}
		}
		return nil

	case *runtime.Tuple:
		for _, elem := range coll.Elements {
			env := runtime.NewEnvironment(i.environment)
			env.Define(s.Name.Lexeme, elem)
			if err := i.executeBlock(s.Body.Statements, env); err != nil {
				if isBreak(err) {
					return nil
				}
				if isContinue(err) {
					continue
				}
				return err
			}
		}
		return nil

	default:
		return errorInterrupt(runtimeErrorAtToken(s.Keyword, fmt.Sprintf("Cannot iterate over type '%s'.", runtime.TypeName(iterable))))
	}
}
