/*
  File: container.go
  Purpose: Compile-time expansion of the container() helper.
  Author: taikocss project
  Notes: container(type) and container(name, type) are the only accepted
         shapes; the type must name a container-type keyword.
*/

package evaluator

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"taikocss/internal/diag"
	"taikocss/internal/jsparser"
	"taikocss/internal/lowering"
)

// containerTypes is the closed set of valid container-type keywords.
var containerTypes = map[string]bool{
	"size":        true,
	"inline-size": true,
	"block-size":  true,
	"normal":      true,
}

// ExpandContainer lowers a container(...) call into the style entries it
// stands for, in the order containerType, containerName.
func (e *Evaluator) ExpandContainer(call *sitter.Node) ([]lowering.Entry, error) {
	args := jsparser.Arguments(call)
	if len(args) < 1 || len(args) > 2 {
		return nil, e.containerError(call,
			fmt.Sprintf("container() takes 1 or 2 arguments, got %d", len(args)))
	}

	var name, typ string
	var err error
	if len(args) == 1 {
		typ, err = e.containerString(args[0], "container type")
	} else {
		name, err = e.containerString(args[0], "container name")
		if err == nil {
			typ, err = e.containerString(args[1], "container type")
		}
	}
	if err != nil {
		return nil, err
	}

	if !containerTypes[typ] {
		return nil, e.containerError(args[len(args)-1],
			fmt.Sprintf("container type %q is not one of size, inline-size, block-size, normal", typ))
	}

	entries := []lowering.Entry{{Key: "containerType", Val: lowering.StringValue(typ)}}
	if name != "" {
		entries = append(entries, lowering.Entry{Key: "containerName", Val: lowering.StringValue(name)})
	}
	return entries, nil
}

// containerString statically evaluates one container() argument to a
// string.
func (e *Evaluator) containerString(node *sitter.Node, what string) (string, error) {
	value, err := e.Eval(node, what)
	if err != nil {
		return "", err
	}
	if value.Kind != lowering.ValueString {
		return "", e.containerError(node, fmt.Sprintf("%s must be a string", what))
	}
	return value.Str, nil
}

// containerError builds a BadContainerCall diagnostic under the
// container() subsystem regardless of the enclosing call.
func (e *Evaluator) containerError(node *sitter.Node, reason string) *diag.Error {
	line, col := e.Pos.Lookup(int(node.StartByte()))
	return diag.New(diag.BadContainerCall, e.Source.Filename, line, col,
		diag.SubsystemContainer, reason,
		"Use container(type) or container(name, type) with a valid container-type keyword")
}
