// Package raygun exposes a logrus hook reporting errors to Raygun.
//
// Create a new *raygun.Hook and add it to your logger:
//	hook, err := raygun.New(raygun.Configuration{
//		APIKey: "<<YOUR API KEY HERE>>",
//		Tags:   "production,api",
//	})
//	if err != nil {
//		panic(err)
//	}
//	logrus.AddHook(hook)
// Every entry logged at error level or above is then reported, synchronously,
// including the error attached with WithError and all of the entry's fields.
// Reporting failures are returned to logrus, which prints them to stderr.
//
// When the same configuration is deployed to several hosts, APIKey may hold a
// space separated list of "hostname:apikey" pairs instead:
//	APIKey: "web-1:<<KEY>> web-2:<<OTHER KEY>>",
// Hosts not in the list report nothing.
//
// Diagnostic data that isn't part of an entry's fields can be attached to a
// context.Context, and is reported for entries logged with that context:
//	ctx = raygun.WithDiagnostic(ctx, "requestID", id)
//	logrus.WithContext(ctx).WithError(err).Error("unable to charge card")
//
// Set the RAYGUN_APPLICATION_ID environment variable to prefix every message
// with the name of your application.
package raygun
