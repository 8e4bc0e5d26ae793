package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/armsim/config"
)

func (a *armsimApp) configDefaultAction(c *cli.Context) error {
	data, err := config.Marshal(config.Default(), "."+c.String(flagFormat))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", data)
	return nil
}

// configPath returns the file argument, falling back to --config.
func (a *armsimApp) configPath(c *cli.Context) (string, error) {
	if path := c.Args().First(); path != "" {
		return path, nil
	}
	if a.cfgPath != "" {
		return a.cfgPath, nil
	}
	return "", errors.New("a config file argument is required")
}

func (a *armsimApp) configValidateAction(c *cli.Context) error {
	path, err := a.configPath(c)
	if err != nil {
		return err
	}
	if _, err := config.Read(path); err != nil {
		return err
	}
	printf(c.App.Writer, "%s is valid", path)
	return nil
}

func (a *armsimApp) configSchemaAction(c *cli.Context) error {
	data, err := config.Schema()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", data)
	return nil
}

func (a *armsimApp) configResetAction(c *cli.Context) error {
	path, err := a.configPath(c)
	if err != nil {
		return err
	}
	if err := config.Reset(path); err != nil {
		return err
	}
	a.logger.Infow("reset config to defaults", "path", path)
	printf(c.App.Writer, "wrote defaults to %s", path)
	return nil
}
