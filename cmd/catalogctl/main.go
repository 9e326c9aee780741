// Command catalogctl is the terminal admin console for the catalog API.
//
//	catalogctl list-products
//	catalogctl add-product -name Shirt -description Cotton -price 20 -stock 5 -images http://x/1.png
//	catalogctl upload front.png back.png
//
// The API address is read from CATALOG_URL and an optional bearer token from
// CATALOG_TOKEN.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"catalog/internal/apperror"
	"catalog/internal/console"
	"catalog/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type command struct {
	usage string
	run   func(c *console.Client, args []string, out io.Writer) error
}

var commands = map[string]command{
	"list-products":  {"", listProducts},
	"get-product":    {"<id>", getProduct},
	"add-product":    {"-name -description -price -stock -images [-color] [-size]", addProduct},
	"edit-product":   {"-id [-name] [-description] [-price] [-stock] [-images] [-color] [-size]", editProduct},
	"delete-product": {"<id>", deleteProduct},
	"upload":         {"<file>...", upload},
	"list-users":     {"", listUsers},
	"add-user":       {"-name -email -password [-cart] [-role]", addUser},
	"update-role":    {"-id -role", updateRole},
	"login":          {"-email -password", login},
}

func main() {
	_ = godotenv.Load()
	v := viper.New()
	v.SetDefault("CATALOG_URL", console.DefaultBaseURL)
	v.AutomaticEnv()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}

	client := console.NewClient(v.GetString("CATALOG_URL"))
	if token := v.GetString("CATALOG_TOKEN"); token != "" {
		client.SetToken(token)
	}

	if err := cmd.run(client, os.Args[2:], os.Stdout); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: catalogctl <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(w, "  %-15s %s\n", name, commands[name].usage)
	}
}

// report prints the server's message, plus per-field details for
// validation failures.
func report(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)

	var fields map[string]string
	var apiErr *console.APIError
	var appErr *apperror.Error
	switch {
	case errors.As(err, &apiErr):
		fields = apiErr.Fields
	case errors.As(err, &appErr):
		fields = appErr.Fields
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, fields[k])
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func singleArg(args []string, what string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("expected exactly one %s", what)
	}
	return args[0], nil
}

func productFlags(name string, d *console.ProductDraft) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&d.Name, "name", "", "product name")
	fs.StringVar(&d.Description, "description", "", "product description")
	fs.StringVar(&d.Price, "price", "", "price as a whole number")
	fs.StringVar(&d.Stock, "stock", "", "units in stock")
	fs.StringVar(&d.Color, "color", "", "comma separated colors")
	fs.StringVar(&d.Images, "images", "", "comma separated image URLs")
	fs.StringVar(&d.Size, "size", "", "size label")
	return fs
}

func listProducts(c *console.Client, _ []string, out io.Writer) error {
	products, err := c.ListProducts()
	if err != nil {
		return err
	}
	return printJSON(out, products)
}

func getProduct(c *console.Client, args []string, out io.Writer) error {
	id, err := singleArg(args, "product id")
	if err != nil {
		return err
	}
	product, err := c.GetProduct(id)
	if err != nil {
		return err
	}
	return printJSON(out, product)
}

func addProduct(c *console.Client, args []string, out io.Writer) error {
	var draft console.ProductDraft
	if err := productFlags("add-product", &draft).Parse(args); err != nil {
		return err
	}
	in, err := draft.Parse()
	if err != nil {
		return err
	}
	product, err := c.AddProduct(in)
	if err != nil {
		return err
	}
	return printJSON(out, product)
}

func editProduct(c *console.Client, args []string, out io.Writer) error {
	var draft console.ProductDraft
	var id string
	fs := productFlags("edit-product", &draft)
	fs.StringVar(&id, "id", "", "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" {
		return errors.New("-id is required")
	}
	upd, err := draft.ParseUpdate()
	if err != nil {
		return err
	}
	product, err := c.EditProduct(id, upd)
	if err != nil {
		return err
	}
	return printJSON(out, product)
}

func deleteProduct(c *console.Client, args []string, out io.Writer) error {
	id, err := singleArg(args, "product id")
	if err != nil {
		return err
	}
	product, err := c.DeleteProduct(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %s (%s)\n", product.ID, product.Name)
	return nil
}

func upload(c *console.Client, args []string, out io.Writer) error {
	urls, err := c.UploadImages(args)
	if err != nil {
		return err
	}
	for _, u := range urls {
		fmt.Fprintln(out, u)
	}
	return nil
}

func listUsers(c *console.Client, _ []string, out io.Writer) error {
	users, err := c.ListUsers()
	if err != nil {
		return err
	}
	return printJSON(out, users)
}

func addUser(c *console.Client, args []string, out io.Writer) error {
	var draft console.UserDraft
	fs := flag.NewFlagSet("add-user", flag.ContinueOnError)
	fs.StringVar(&draft.Name, "name", "", "full name")
	fs.StringVar(&draft.Email, "email", "", "email address")
	fs.StringVar(&draft.Password, "password", "", "initial password")
	fs.StringVar(&draft.Cart, "cart", "", "comma separated product ids")
	fs.StringVar(&draft.Role, "role", "", "user or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in, err := draft.Parse()
	if err != nil {
		return err
	}
	user, err := c.AddUser(in)
	if err != nil {
		return err
	}
	return printJSON(out, user)
}

func updateRole(c *console.Client, args []string, out io.Writer) error {
	var id, role string
	fs := flag.NewFlagSet("update-role", flag.ContinueOnError)
	fs.StringVar(&id, "id", "", "user id")
	fs.StringVar(&role, "role", "", "user or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" || role == "" {
		return errors.New("-id and -role are required")
	}
	user, err := c.UpdateRole(id, models.Role(strings.ToLower(role)))
	if err != nil {
		return err
	}
	return printJSON(out, user)
}

func login(c *console.Client, args []string, out io.Writer) error {
	var email, password string
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.StringVar(&email, "email", "", "account email")
	fs.StringVar(&password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	token, err := c.Login(email, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}
