package sema

import (
	"fmt"

	"theorycheck/internal/types"
)

const msgShortfall = "InlineData values must match the number of method parameters"

func msgExcess(v types.Value) string {
	return fmt.Sprintf("There is no matching method parameter for value: %s.", v.String())
}

func msgNullValueType(p types.Param) string {
	return fmt.Sprintf("Null should not be used for value type parameter '%s' of type '%s'.", p.Name, p.Type.String())
}

func msgNotConvertible(p types.Param) string {
	return fmt.Sprintf("The value is not convertible to the method parameter '%s' of type '%s'.", p.Name, p.Type.String())
}

func noteParam(p types.Param) string {
	return fmt.Sprintf("parameter '%s' declared here", p.Name)
}
