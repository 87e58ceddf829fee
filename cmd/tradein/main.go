// Command tradein is a terminal client for the trade-in service: it logs in,
// checks the form locally and shows the estimate once the server confirms.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"avtovybor/internal/client"
	"avtovybor/internal/quote"
	"avtovybor/internal/validate"
)

const usage = `usage: tradein [-server URL] <command> [flags]

commands:
  register  -email E -password P
  submit    -email E -password P -make M -model M -year Y -mileage KM -phone PHONE
  estimate  -year Y -mileage KM
`

func main() {
	server := flag.String("server", envOr("AVTOVYBOR_URL", "http://localhost:3000"), "service base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	c := client.New(*server, *timeout)
	ctx := context.Background()

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "register":
		err = register(ctx, c, args)
	case "submit":
		err = submit(ctx, c, args)
	case "estimate":
		err = estimate(args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, client.UserMessage(err))
		os.Exit(1)
	}
}

func register(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if err := c.Register(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Println("Успешная регистрация")
	return nil
}

func submit(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	var f client.Form
	fs.StringVar(&f.Make, "make", "", "car make")
	fs.StringVar(&f.Model, "model", "", "car model")
	fs.StringVar(&f.Year, "year", "", "year of manufacture")
	fs.StringVar(&f.Mileage, "mileage", "", "mileage, km")
	fs.StringVar(&f.Phone, "phone", "", "contact phone")
	_ = fs.Parse(args)

	// without credentials the submit is refused locally
	if *email != "" {
		if err := c.Login(ctx, *email, *password); err != nil {
			return err
		}
	}
	res, err := c.SubmitTradeIn(ctx, f)
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	fmt.Printf("Предварительная оценка вашего автомобиля: %s\n", res.Estimate.Display())
	fmt.Printf("Мы свяжемся с вами по номеру %s.\n", res.Phone)
	return nil
}

func estimate(args []string) error {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	year := fs.String("year", "", "year of manufacture")
	mileage := fs.String("mileage", "", "mileage, km")
	_ = fs.Parse(args)

	y, err := validate.Year(*year)
	if err != nil {
		return err
	}
	km, err := validate.Mileage(*mileage)
	if err != nil {
		return err
	}
	e := quote.Compute(y, km)
	fmt.Printf("база %s − год %s − пробег %s = %s\n",
		quote.Format(e.BasePrice), quote.Format(e.YearPenalty), quote.Format(e.MileagePenalty), e.Display())
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
