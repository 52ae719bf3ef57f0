package cli

import (
	"context"

	"github.com/daybook-app/daybook/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Registered. You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, userName, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Success!")
	return a.List(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}
