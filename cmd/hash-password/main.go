package main

import (
	"fmt"
	"os"

	"ewebb/backend/internal/auth"
)

// 生成管理员密码的 bcrypt 哈希，输出值用于 EWEBB_ADMIN_PASSWORD。
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: hash-password <password>")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
