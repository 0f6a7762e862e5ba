package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cfarhan/shopping/configs"
	"github.com/cfarhan/shopping/internal/adapter/gateway"
	"github.com/cfarhan/shopping/internal/adapter/rest"
	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/usecase"
)

const usage = `usage: checkout [flags] <command> [args]

commands:
  cart                      show the current cart
  add <product-id> <qty>    add a product to the cart
  update <item-id> <qty>    change a line's quantity
  remove <item-id>          remove a line
  settle                    pay the whole cart with a single request
  pay-card <number> <mm> <yyyy> <cvc>
                            pay by card through the gateway
`

func main() {
	email := flag.String("email", "demo@example.com", "shopper email")
	secret := flag.String("secret", "demo-secret", "shopper secret")
	env := flag.String("env", "dev", "config environment")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := configs.Load("configs", *env)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, err := signIn(ctx, cfg.Client.BaseURL, *email, *secret)
	if err != nil {
		log.Fatal(err)
	}

	api := rest.NewClient(cfg.Client.BaseURL+"/v1", rest.StaticTokenSource(token), cfg.Client.Timeout)
	cartStore := usecase.NewCartStore(rest.NewCartClient(api))
	settler := rest.NewCheckoutClient(api)
	cards := gateway.NewCardGateway(rest.NewPaymentClient(api), cfg.Client.GatewayURL, cfg.Client.Timeout)
	flow := usecase.NewCheckout(cartStore, settler, cards)

	if err := run(ctx, flag.Args(), cartStore, flow); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, cart *usecase.CartStore, flow *usecase.Checkout) error {
	switch cmd := args[0]; cmd {
	case "cart":
		c, err := cart.Load(ctx)
		if err != nil {
			return err
		}
		printCart(c)
		return nil

	case "add", "update":
		if len(args) != 3 {
			return fmt.Errorf("%s needs an id and a quantity", cmd)
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad quantity %q", args[2])
		}
		var c domain.Cart
		if cmd == "add" {
			c, err = cart.AddItem(ctx, args[1], qty)
		} else {
			c, err = cart.UpdateItem(ctx, args[1], qty)
		}
		if err != nil {
			return err
		}
		printCart(c)
		return nil

	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("remove needs an item id")
		}
		c, err := cart.RemoveItem(ctx, args[1])
		if err != nil {
			return err
		}
		printCart(c)
		return nil

	case "settle":
		if _, err := cart.Load(ctx); err != nil {
			return err
		}
		if _, err := flow.Start(ctx, domain.MethodLegacy); err != nil {
			return err
		}
		state, err := flow.Submit(ctx)
		if err != nil {
			return err
		}
		return report(flow, state)

	case "pay-card":
		if len(args) != 5 {
			return fmt.Errorf("pay-card needs number, exp month, exp year and cvc")
		}
		mm, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad exp month %q", args[2])
		}
		yyyy, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("bad exp year %q", args[3])
		}
		card := domain.CardDetails{Number: args[1], ExpMonth: mm, ExpYear: yyyy, CVC: args[4]}

		if _, err := cart.Load(ctx); err != nil {
			return err
		}
		if _, err := flow.Start(ctx, domain.MethodGatewayCard); err != nil {
			return err
		}
		if _, err := flow.Submit(ctx); err != nil {
			return err
		}
		state, err := flow.SubmitCard(ctx, card)
		if err != nil {
			return err
		}
		return report(flow, state)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func report(flow *usecase.Checkout, state domain.CheckoutState) error {
	att := flow.Attempt()
	switch state {
	case domain.StateSucceeded:
		if att != nil && att.Order != nil {
			fmt.Printf("paid: order %s (%s)\n", att.Order.ID, att.Order.TotalAmount)
		} else {
			fmt.Println("paid")
		}
		return nil
	case domain.StateActionRequired:
		fmt.Println("the card issuer requires extra authentication; retry with another card")
		return nil
	default:
		if att != nil && att.Reason != nil {
			return fmt.Errorf("checkout failed: %w", att.Reason)
		}
		return fmt.Errorf("checkout ended in state %s", state)
	}
}

func printCart(c domain.Cart) {
	if c.IsEmpty() {
		fmt.Println("cart is empty")
		return
	}
	for _, it := range c.Items {
		fmt.Printf("%-10s %-20s x%-3d %s\n", it.ID, it.ProductName, it.Quantity, it.Total)
	}
	fmt.Printf("total: %s\n", c.GrandTotal)
}

func signIn(ctx context.Context, baseURL, email, secret string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "secret": secret})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/token", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", &domain.NetworkError{Op: "POST /v1/token", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.ErrAuth
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}
