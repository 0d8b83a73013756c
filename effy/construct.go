package effy

import (
	"fmt"
	"reflect"

	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/types"
)

// typeScope resolves the names used in a type annotation.
// Type and row variables are created on first use and shared by later uses of the same name.
type typeScope struct {
	fresher      *types.Fresher
	level        types.Level
	capabilities map[string]*types.Capability
	vars         map[string]*types.Var
}

func newTypeScope(fresher *types.Fresher, level types.Level, capabilities map[string]*types.Capability) *typeScope {
	return &typeScope{
		fresher:      fresher,
		level:        level,
		capabilities: capabilities,
		vars:         make(map[string]*types.Var),
	}
}

func (s *typeScope) variable(name string, kind types.Kind) (*types.Var, error) {
	if v, ok := s.vars[name]; ok {
		if v.Kind() != kind {
			return nil, fmt.Errorf("'%s is used both as a %v and as a %v", name, v.Kind(), kind)
		}
		return v, nil
	}
	v := s.fresher.NewVar(kind, s.level)
	s.vars[name] = v
	return v, nil
}

func (s *typeScope) construct(ann ast.TypeAnn) (types.Type, error) {
	switch ann := ann.(type) {
	case *ast.UnitAnn:
		return types.Unit{}, nil
	case *ast.VarAnn:
		return s.variable(ann.Name, types.KindValue)
	case *ast.PureArrowAnn:
		arg, result, err := s.constructBoth(ann.Arg, ann.Result)
		if err != nil {
			return nil, err
		}
		return &types.PureArrow{Arg: arg, Result: result}, nil
	case *ast.EffArrowAnn:
		arg, result, err := s.constructBoth(ann.Arg, ann.Result)
		if err != nil {
			return nil, err
		}
		labels := make([]*types.Capability, 0, len(ann.Effect))
		for _, name := range ann.Effect {
			c, ok := s.capabilities[name]
			if !ok {
				return nil, fmt.Errorf("unknown capability '%s'", name)
			}
			labels = append(labels, c)
		}
		effect := types.ClosedRow(labels...)
		if ann.Tail != "" {
			tail, err := s.variable(ann.Tail, types.KindRow)
			if err != nil {
				return nil, err
			}
			effect = types.OpenRow(tail, labels...)
		}
		return &types.EffArrow{Arg: arg, Result: result, Effect: effect}, nil
	default:
		return nil, fmt.Errorf("unexpected type annotation %v", reflect.TypeOf(ann))
	}
}

func (s *typeScope) constructBoth(fst, snd ast.TypeAnn) (types.Type, types.Type, error) {
	a, err := s.construct(fst)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.construct(snd)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
