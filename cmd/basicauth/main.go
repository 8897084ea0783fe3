// Command basicauth prints the Authorization header value for a WhatsApp
// bridge protected with basic authentication.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/slipstream/tautulli-notify/internal/config"
)

func main() {
	in := bufio.NewReader(os.Stdin)

	login := prompt(in, "Login: ")
	password := prompt(in, "Password: ")

	fmt.Println(config.BasicAuth(login, password))
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
