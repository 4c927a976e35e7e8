package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// bindJSON parsea el cuerpo y aplica las reglas `validate` del DTO.
// Si falla escribe la respuesta 400 y devuelve ok=false.
func bindJSON(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		return false, badRequest(c, "VALIDATION", validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := toSnake(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" es requerido")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s excede el máximo de %s", field, fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s debe tener al menos %s", field, fe.Param()))
		default:
			msgs = append(msgs, field+" inválido")
		}
	}
	return strings.Join(msgs, "; ")
}

// toSnake CompCode -> comp_code, para que el mensaje use el nombre JSON.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
