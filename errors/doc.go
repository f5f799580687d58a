/*
Package errors implements the error model shared by all extensions.

Every error returned by a handler should wrap one of the root errors
registered with Register. A root error carries an ABCI code, which is what a
client receives in a CheckTx/DeliverTx response, and which ABCIError maps back
to the same root error on the client side, so that

	errors.ErrNotFound.Is(err)

works on both ends of the connection.

Create errors at the point of failure with ErrXyz.New, ErrXyz.Newf or
Wrap(err, "..."). The innermost wrap attaches a stack trace that is printed
with %+v. Do not declare wrapped errors as package globals, the recorded
stack trace would point at package initialization.

Validation code usually collects several problems at once:

	var errs error
	errs = errors.AppendField(errs, "Owners", validateOwners(m.Owners))
	errs = errors.AppendField(errs, "Required", validateRequired(m))
	return errs
*/
package errors
