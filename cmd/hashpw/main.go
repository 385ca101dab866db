// Генерация bcrypt-хеша для ручного добавления пользователя:
// go run ./cmd/hashpw <пароль>
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("использование: hashpw <пароль>")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("ошибка при генерации хеша: %v", err)
	}
	fmt.Println(string(hashedPassword))
}
