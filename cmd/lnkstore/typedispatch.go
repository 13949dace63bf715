package main

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/xyproto/linkstore"
)

// parseAndEmbed decodes text as typeName and stages it into the named slot
// of e. Go generics require the type parameter at compile time, so dispatch
// by the CLI's <type> argument is a switch over the finite set of Scalar
// instances this tool exposes, rather than reflection.
func parseAndEmbed(e *linkstore.Embedder, name, typeName, text string) error {
	switch typeName {
	case "uint8":
		v, err := strconv.ParseUint(text, 10, 8)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, uint8(v))
	case "uint16":
		v, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, uint16(v))
	case "uint32":
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, uint32(v))
	case "uint64":
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, v)
	case "int8":
		v, err := strconv.ParseInt(text, 10, 8)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, int8(v))
	case "int16":
		v, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, int16(v))
	case "int32":
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, int32(v))
	case "int64":
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, v)
	case "bool":
		v, err := strconv.ParseBool(text)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, v)
	case "float32":
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, float32(v))
	case "float64":
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return err
		}
		return linkstore.Embed(e, name, v)
	case "uint128":
		b, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return fmt.Errorf("invalid uint128 literal %q", text)
		}
		return linkstore.Embed(e, name, linkstore.Uint128FromBig(b))
	case "int128":
		b, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return fmt.Errorf("invalid int128 literal %q", text)
		}
		return linkstore.Embed(e, name, linkstore.Int128FromBig(b))
	default:
		return fmt.Errorf("unsupported type %q", typeName)
	}
}

// readAndPrint decodes every occurrence of name as typeName and prints each
// value on its own line.
func readAndPrint(e *linkstore.Embedder, name, typeName string) error {
	switch typeName {
	case "uint8":
		return printAll(linkstore.Read[uint8](e, name))
	case "uint16":
		return printAll(linkstore.Read[uint16](e, name))
	case "uint32":
		return printAll(linkstore.Read[uint32](e, name))
	case "uint64":
		return printAll(linkstore.Read[uint64](e, name))
	case "int8":
		return printAll(linkstore.Read[int8](e, name))
	case "int16":
		return printAll(linkstore.Read[int16](e, name))
	case "int32":
		return printAll(linkstore.Read[int32](e, name))
	case "int64":
		return printAll(linkstore.Read[int64](e, name))
	case "bool":
		return printAll(linkstore.Read[bool](e, name))
	case "float32":
		return printAll(linkstore.Read[float32](e, name))
	case "float64":
		return printAll(linkstore.Read[float64](e, name))
	case "uint128":
		v := linkstore.Read[linkstore.Uint128](e, name)
		if err := v.Err(); err != nil {
			return err
		}
		for _, val := range v.Slice() {
			fmt.Println(val.Big().String())
		}
		return nil
	case "int128":
		v := linkstore.Read[linkstore.Int128](e, name)
		if err := v.Err(); err != nil {
			return err
		}
		for _, val := range v.Slice() {
			fmt.Println(val.Big().String())
		}
		return nil
	default:
		return fmt.Errorf("unsupported type %q", typeName)
	}
}

func printAll[T linkstore.Scalar](v *linkstore.Values[T]) error {
	if err := v.Err(); err != nil {
		return err
	}
	for _, val := range v.Slice() {
		fmt.Printf("%v\n", val)
	}
	return nil
}
