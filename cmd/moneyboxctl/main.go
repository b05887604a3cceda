// Command moneyboxctl is the operator CLI for the money box service.
package main

func main() {
	Execute()
}
